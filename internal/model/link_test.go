package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTypeValid(t *testing.T) {
	assert.True(t, UserTypeNone.Valid())
	assert.True(t, UserTypeCustomer.Valid())
	assert.True(t, UserTypeSupplier.Valid())
	assert.True(t, UserTypeOrganization.Valid())
	assert.False(t, UserType("admin").Valid())
}

func TestUserTypeHasDeepLink(t *testing.T) {
	assert.True(t, UserTypeCustomer.HasDeepLink())
	assert.True(t, UserTypeSupplier.HasDeepLink())
	assert.False(t, UserTypeOrganization.HasDeepLink())
	assert.False(t, UserTypeNone.HasDeepLink())
}

// Тест деривации deep-ссылок: путь после третьего сегмента "/" и схема по типу
func TestDeriveDeepLinks(t *testing.T) {
	tests := []struct {
		name     string
		longURL  string
		userType UserType
		deep     string
		ios      string
	}{
		{
			name:     "customer",
			longURL:  "https://example.com/a/b/c",
			userType: UserTypeCustomer,
			deep:     "rydeu://app/a/b/c",
			ios:      "rydeu://app/a/b/c",
		},
		{
			name:     "supplier",
			longURL:  "https://example.com/a/b/c",
			userType: UserTypeSupplier,
			deep:     "rydeu-supplier://app/a/b/c",
			ios:      "rydeu-supplier://app/a/b/c",
		},
		{
			name:     "organization has no app",
			longURL:  "https://example.com/a/b/c",
			userType: UserTypeOrganization,
			deep:     "",
			ios:      "",
		},
		{
			name:     "empty user type",
			longURL:  "https://example.com/a/b/c",
			userType: UserTypeNone,
			deep:     "",
			ios:      "",
		},
		{
			name:     "url without path",
			longURL:  "https://example.com",
			userType: UserTypeCustomer,
			deep:     "rydeu://app/",
			ios:      "rydeu://app/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deep, ios := DeriveDeepLinks(tt.longURL, tt.userType)
			assert.Equal(t, tt.deep, deep)
			assert.Equal(t, tt.ios, ios)
		})
	}
}
