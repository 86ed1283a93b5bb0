package domain_test

import (
	"testing"

	"stockroom/internal/domain"
)

func TestStockStatus(t *testing.T) {
	cases := []struct {
		stock, minStock int
		want            string
	}{
		{0, 0, domain.StatusOutOfStock},
		{5, 10, domain.StatusLow},
		{10, 5, domain.StatusAvailable},
		{0, 5, domain.StatusOutOfStock},
		{-3, 5, domain.StatusOutOfStock},
		{5, 5, domain.StatusLow},
		{1, 0, domain.StatusAvailable},
	}
	for _, tc := range cases {
		if got := domain.StockStatus(tc.stock, tc.minStock); got != tc.want {
			t.Errorf("StockStatus(%d,%d) = %s, want %s", tc.stock, tc.minStock, got, tc.want)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !domain.RoleAtLeast(domain.RoleSuperAdmin, domain.RoleStaff) {
		t.Error("super_admin should satisfy staff")
	}
	if !domain.RoleAtLeast(domain.RoleStaff, domain.RoleStaff) {
		t.Error("staff should satisfy staff")
	}
	if domain.RoleAtLeast(domain.RoleEmployee, domain.RoleStaff) {
		t.Error("employee should not satisfy staff")
	}
	if domain.RoleAtLeast("bogus", domain.RoleEmployee) {
		t.Error("unknown role should rank below every known role")
	}
	if domain.ValidRole("bogus") {
		t.Error("bogus should not be a valid role")
	}
}
