package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsAdmin(t *testing.T) {
	cases := []struct {
		name string
		user User
		want bool
	}{
		{"plain customer", User{}, false},
		{"customer with profile", User{Profile: &Profile{Role: RoleCustomer}}, false},
		{"staff flag only", User{IsStaff: true}, true},
		{"admin role only", User{Profile: &Profile{Role: RoleAdmin}}, true},
		{"both signals", User{IsStaff: true, Profile: &Profile{Role: RoleAdmin}}, true},
		{"staff with customer profile", User{IsStaff: true, Profile: &Profile{Role: RoleCustomer}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.IsAdmin())
		})
	}
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "dana", (&User{Username: "dana"}).FullName())
	assert.Equal(t, "Dana", (&User{Username: "dana", FirstName: "Dana"}).FullName())
	assert.Equal(t, "Dana Cruz", (&User{FirstName: "Dana", LastName: "Cruz"}).FullName())
}

func TestIsValidVehicleType(t *testing.T) {
	for _, vt := range VehicleTypes {
		assert.True(t, IsValidVehicleType(vt), vt)
	}
	assert.False(t, IsValidVehicleType("hovercraft"))
	assert.False(t, IsValidVehicleType(""))
}

func TestService_FeatureList(t *testing.T) {
	svc := Service{Features: "Exterior wash, Interior vacuum , Tire shine"}
	assert.Equal(t, []string{"Exterior wash", "Interior vacuum", "Tire shine"}, svc.FeatureList())

	assert.Nil(t, (&Service{}).FeatureList())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory(CategoryPackage))
	assert.True(t, IsValidCategory(CategoryIndividual))
	assert.False(t, IsValidCategory("bundle"))
}
