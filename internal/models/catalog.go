package models

// Category and option lists offered by the client when filling forms. The
// server stores categories as free text, so these are suggestions only.
var (
	IncomeCategories = []string{"Salário", "Freelance", "Investimentos", "Vendas", "Outros"}

	ExpenseCategories = []string{
		"Alimentação", "Transporte", "Moradia", "Saúde", "Educação",
		"Lazer", "Compras", "Serviços", "Outros",
	}

	AssetCategories = []string{
		"Imóveis", "Veículos", "Eletrônicos", "Eletrodomésticos", "Móveis",
		"Equipamentos", "Ferramentas", "Joias", "Arte", "Outros",
	}

	MaintenanceTypes = []string{
		"Troca de Óleo", "Revisão", "Troca de Pneus", "Freios",
		"Alinhamento/Balanceamento", "Outro",
	}

	AccountTypes     = []AccountType{AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeCredit, AccountTypeOther}
	AssetConditions  = []AssetCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged}
	VehicleTypes     = []VehicleType{VehicleTypeCar, VehicleTypeMotorcycle, VehicleTypeTruck}
	FuelTypes        = []FuelType{FuelGasoline, FuelEthanol, FuelDiesel, FuelFlex, FuelElectric}
	TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense}
	Roles            = []Role{RoleAdmin, RoleEditor, RoleViewer}
)

// Catalog groups every option list for the catalog endpoint.
type Catalog struct {
	IncomeCategories  []string          `json:"income_categories"`
	ExpenseCategories []string          `json:"expense_categories"`
	AssetCategories   []string          `json:"asset_categories"`
	MaintenanceTypes  []string          `json:"maintenance_types"`
	AccountTypes      []AccountType     `json:"account_types"`
	AssetConditions   []AssetCondition  `json:"asset_conditions"`
	VehicleTypes      []VehicleType     `json:"vehicle_types"`
	FuelTypes         []FuelType        `json:"fuel_types"`
	TransactionTypes  []TransactionType `json:"transaction_types"`
	Roles             []Role            `json:"roles"`
}

// DefaultCatalog returns the built-in option lists.
func DefaultCatalog() Catalog {
	return Catalog{
		IncomeCategories:  IncomeCategories,
		ExpenseCategories: ExpenseCategories,
		AssetCategories:   AssetCategories,
		MaintenanceTypes:  MaintenanceTypes,
		AccountTypes:      AccountTypes,
		AssetConditions:   AssetConditions,
		VehicleTypes:      VehicleTypes,
		FuelTypes:         FuelTypes,
		TransactionTypes:  TransactionTypes,
		Roles:             Roles,
	}
}

// DefaultRefuelingFuel picks the fuel suggested for a new refueling. Flex
// vehicles default to gasoline.
func DefaultRefuelingFuel(vehicleFuel FuelType) FuelType {
	if vehicleFuel == FuelFlex || vehicleFuel == "" {
		return FuelGasoline
	}
	return vehicleFuel
}
