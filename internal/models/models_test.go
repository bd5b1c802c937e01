package models

import "testing"

func TestAssetValue(t *testing.T) {
	current := 800.0
	tests := []struct {
		name  string
		asset Asset
		want  float64
	}{
		{"uses current value when set", Asset{AcquisitionValue: 1000, CurrentValue: &current}, 800},
		{"falls back to acquisition value", Asset{AcquisitionValue: 1000}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.asset.Value(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRoleCanWrite(t *testing.T) {
	if !RoleAdmin.CanWrite() || !RoleEditor.CanWrite() {
		t.Error("expected admin and editor to write")
	}
	if RoleViewer.CanWrite() {
		t.Error("expected viewer to be read-only")
	}
}

func TestDefaultRefuelingFuel(t *testing.T) {
	if got := DefaultRefuelingFuel(FuelFlex); got != FuelGasoline {
		t.Errorf("expected gasoline for flex, got %s", got)
	}
	if got := DefaultRefuelingFuel(FuelDiesel); got != FuelDiesel {
		t.Errorf("expected diesel, got %s", got)
	}
}

func TestMaintenanceTableName(t *testing.T) {
	if got := (Maintenance{}).TableName(); got != "vehicle_maintenances" {
		t.Errorf("expected vehicle_maintenances, got %s", got)
	}
}
