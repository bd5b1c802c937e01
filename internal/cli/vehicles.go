package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"patrimonio/internal/client"
	"patrimonio/internal/confirm"
	"patrimonio/internal/forms"
)

type vehiclesCmd struct {
	app     *App
	query   client.VehicleQuery
	history string
}

func (*vehiclesCmd) Name() string     { return "vehicles" }
func (*vehiclesCmd) Synopsis() string { return "list your vehicles" }
func (*vehiclesCmd) Usage() string {
	return `patrimonio vehicles [-search <text>] [-type car|motorcycle|truck] [-history <vehicle id>]

  Lists vehicles with this month's spending, fuel efficiency and upcoming
  licensing and insurance dates. -history shows the refuelings and
  maintenances of one vehicle.
`
}

func (c *vehiclesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query.Search, "search", "", "Text to look for in name, model or plate")
	f.StringVar(&c.query.Type, "type", "", "Vehicle type")
	f.StringVar(&c.history, "history", "", "Vehicle id whose history to show")
	f.IntVar(&c.query.Page, "page", 1, "Page number")
}

func (c *vehiclesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		if c.history != "" {
			return c.showHistory(ctx, api)
		}
		page, err := api.Vehicles(ctx, c.query)
		if err != nil {
			return err
		}
		overview, err := api.VehicleSummary(ctx)
		if err != nil {
			return err
		}
		c.app.printMarkdown(VehiclesMarkdown(page, overview, c.app.Currency))
		return nil
	})
}

func (c *vehiclesCmd) showHistory(ctx context.Context, api *client.Client) error {
	vehicle, err := api.Vehicle(ctx, c.history)
	if err != nil {
		return err
	}
	refuelings, err := api.Refuelings(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	maintenances, err := api.Maintenances(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	md := fmt.Sprintf("# %s\n\n%s %s %d · %s · %.0f km\n\n", cell(vehicle.Name), cell(vehicle.Brand), cell(vehicle.Model),
		vehicle.Year, cell(vehicle.LicensePlate), vehicle.Odometer)
	md += RefuelingsMarkdown(refuelings, c.app.Currency) + "\n" + MaintenancesMarkdown(maintenances, c.app.Currency)
	c.app.printMarkdown(md)
	return nil
}

type vehicleAddCmd struct {
	app    *App
	values map[string]*string
}

func (*vehicleAddCmd) Name() string     { return "vehicle-add" }
func (*vehicleAddCmd) Synopsis() string { return "register a vehicle" }
func (*vehicleAddCmd) Usage() string {
	return `patrimonio vehicle-add -name <name> -brand <brand> -model <model> -license_plate <plate>
                       [-year n] [-odometer km] [-type car|motorcycle|truck]
                       [-fuel_type gasoline|ethanol|diesel|flex|electric]
                       [-licensing_date YYYY-MM-DD] [-insurance_renewal_date YYYY-MM-DD]
`
}

func (c *vehicleAddCmd) SetFlags(f *flag.FlagSet) {
	c.values = formFlags(f, forms.VehicleForm{})
}

func (c *vehicleAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	form, err := applyFlags(f, forms.NewVehicleForm(c.app.today()), c.values)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		vehicle, err := forms.SubmitVehicle(ctx, c.app.Sessions, api, form, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Vehicle %s registered (%s)\n", vehicle.Name, vehicle.ID)
		return nil
	})
}

type vehicleEditCmd struct {
	app    *App
	id     string
	values map[string]*string
}

func (*vehicleEditCmd) Name() string     { return "vehicle-edit" }
func (*vehicleEditCmd) Synopsis() string { return "change a vehicle" }
func (*vehicleEditCmd) Usage() string {
	return `patrimonio vehicle-edit -id <id> [-<field> <value> ...]

  Loads the vehicle and changes only the fields given, e.g. -odometer 12000
  or -insurance_renewal_date 2026-01-15. An empty value clears an optional
  date.
`
}

func (c *vehicleEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Vehicle id")
	c.values = formFlags(f, forms.VehicleForm{})
}

func (c *vehicleEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		existing, err := api.Vehicle(ctx, c.id)
		if err != nil {
			return err
		}
		form, err := applyFlags(f, forms.FromVehicle(*existing), c.values)
		if err != nil {
			return err
		}
		vehicle, err := forms.SubmitVehicle(ctx, c.app.Sessions, api, form, existing)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Vehicle %s updated\n", vehicle.ID)
		return nil
	})
}

type vehicleDeleteCmd struct {
	app *App
	id  string
	yes bool
}

func (*vehicleDeleteCmd) Name() string     { return "vehicle-delete" }
func (*vehicleDeleteCmd) Synopsis() string { return "delete a vehicle and its history" }
func (*vehicleDeleteCmd) Usage() string {
	return `patrimonio vehicle-delete -id <id> [-yes]

  Deletes the vehicle with all of its refuelings and maintenances. Asks for
  confirmation unless -yes is given.
`
}

func (c *vehicleDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Vehicle id")
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

func (c *vehicleDeleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		deleted, err := confirm.Delete(ctx, c.app.prompter(c.yes), "Delete vehicle",
			"Are you sure? All refuelings and maintenances of this vehicle will be deleted too.",
			func(ctx context.Context) error { return api.DeleteVehicle(ctx, c.id) })
		return reportDeletion(c.app, "Vehicle", deleted, err)
	})
}

type refuelCmd struct {
	app       *App
	vehicleID string
	values    map[string]*string
}

func (*refuelCmd) Name() string     { return "refuel" }
func (*refuelCmd) Synopsis() string { return "record a refueling" }
func (*refuelCmd) Usage() string {
	return `patrimonio refuel -vehicle <id> -odometer km -liters n -price_per_liter <amount>
                  [-date YYYY-MM-DD] [-fuel_type <fuel>]

  The total is computed by the server. A flex vehicle defaults to gasoline.
`
}

func (c *refuelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.vehicleID, "vehicle", "", "Vehicle id")
	c.values = formFlags(f, forms.RefuelingForm{})
}

func (c *refuelCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.vehicleID == "" {
		fmt.Fprintln(c.app.Err, "Error: -vehicle is required")
		return subcommands.ExitUsageError
	}
	form, err := applyFlags(f, forms.NewRefuelingForm(c.app.today()), c.values)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		r, err := forms.SubmitRefueling(ctx, c.app.Sessions, api, c.vehicleID, form)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Refueling recorded: %.2f L of %s\n", r.Liters, r.FuelType)
		return nil
	})
}

type maintenanceCmd struct {
	app       *App
	vehicleID string
	values    map[string]*string
}

func (*maintenanceCmd) Name() string     { return "maintenance" }
func (*maintenanceCmd) Synopsis() string { return "record a vehicle maintenance" }
func (*maintenanceCmd) Usage() string {
	return `patrimonio maintenance -vehicle <id> -type <service> [-cost <amount>] [-odometer km]
                       [-date YYYY-MM-DD] [-provider <name>] [-notes <text>]
`
}

func (c *maintenanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.vehicleID, "vehicle", "", "Vehicle id")
	c.values = formFlags(f, forms.MaintenanceForm{})
}

func (c *maintenanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.vehicleID == "" {
		fmt.Fprintln(c.app.Err, "Error: -vehicle is required")
		return subcommands.ExitUsageError
	}
	form, err := applyFlags(f, forms.NewMaintenanceForm(c.app.today()), c.values)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		m, err := forms.SubmitMaintenance(ctx, c.app.Sessions, api, c.vehicleID, form)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Maintenance %s recorded\n", m.Type)
		return nil
	})
}
