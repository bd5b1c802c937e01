package listing

import (
	"testing"

	"patrimonio/internal/models"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{"empty term matches", "", []string{"anything"}, true},
		{"blank term matches", "   ", nil, true},
		{"case insensitive", "MERCADO", []string{"Supermercado Extra"}, true},
		{"any field", "lazer", []string{"Cinema", "Lazer"}, true},
		{"no match", "aluguel", []string{"Cinema", "Lazer"}, false},
		{"accented text", "saú", []string{"Saúde"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.term, tt.fields...); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTransactions(t *testing.T) {
	txs := []models.Transaction{
		{Description: "Supermercado", Category: "Alimentação"},
		{Description: "Uber", Category: "Transporte"},
		{Description: "Salário março", Category: "Salário"},
	}

	t.Run("matches description or category", func(t *testing.T) {
		got := Transactions(txs, "transp")
		if len(got) != 1 || got[0].Description != "Uber" {
			t.Fatalf("expected Uber only, got %+v", got)
		}
		got = Transactions(txs, "SUPER")
		if len(got) != 1 || got[0].Category != "Alimentação" {
			t.Fatalf("expected Supermercado only, got %+v", got)
		}
	})

	t.Run("empty search keeps order and does not alias input", func(t *testing.T) {
		got := Transactions(txs, "")
		if len(got) != 3 {
			t.Fatalf("expected 3, got %d", len(got))
		}
		got[0].Description = "changed"
		if txs[0].Description != "Supermercado" {
			t.Error("input slice was modified")
		}
	})
}

func TestAssets(t *testing.T) {
	assets := []models.Asset{
		{Name: "Notebook", Category: "Eletrônicos"},
		{Name: "Geladeira", Category: "Eletrodomésticos"},
		{Name: "Sofá", Category: "Móveis"},
	}

	if got := Assets(assets, "eletr", All); len(got) != 2 {
		t.Errorf("expected 2 assets, got %d", len(got))
	}
	if got := Assets(assets, "eletr", "Eletrônicos"); len(got) != 1 || got[0].Name != "Notebook" {
		t.Errorf("expected Notebook, got %+v", got)
	}
	if got := Assets(assets, "", "Móveis"); len(got) != 1 || got[0].Name != "Sofá" {
		t.Errorf("expected Sofá, got %+v", got)
	}
}

func TestVehicles(t *testing.T) {
	vehicles := []models.Vehicle{
		{Name: "Carro da família", Model: "Corolla", LicensePlate: "ABC1D23", Type: models.VehicleTypeCar},
		{Name: "Moto", Model: "CG 160", LicensePlate: "XYZ9K87", Type: models.VehicleTypeMotorcycle},
	}

	if got := Vehicles(vehicles, "abc1", ""); len(got) != 1 || got[0].Model != "Corolla" {
		t.Errorf("expected plate match, got %+v", got)
	}
	if got := Vehicles(vehicles, "cg", All); len(got) != 1 || got[0].Name != "Moto" {
		t.Errorf("expected model match, got %+v", got)
	}
	if got := Vehicles(vehicles, "", "truck"); len(got) != 0 {
		t.Errorf("expected no trucks, got %+v", got)
	}
}
