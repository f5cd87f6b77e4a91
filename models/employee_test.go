package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	assert.Equal(t, RankEmployee, (&Employee{Role: RoleEmployee}).Rank())
	assert.Equal(t, RankManager, (&Employee{Role: RoleManager}).Rank())
	assert.Equal(t, RankAdmin, (&Employee{Role: RoleAdmin}).Rank())
	// corrections_supervisor sits at admin level
	assert.Equal(t, RankAdmin, (&Employee{Role: RoleSupervisor}).Rank())
	assert.Equal(t, 0, (&Employee{Role: "warden"}).Rank())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleEmployee))
	assert.True(t, ValidRole(RoleSupervisor))
	assert.False(t, ValidRole("warden"))
	assert.False(t, ValidRole(""))
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want string
	}{
		{"BothNames", Employee{Username: "jsmith", FirstName: "Jordan", LastName: "Smith"}, "Jordan Smith"},
		{"FirstOnly", Employee{Username: "jsmith", FirstName: "Jordan"}, "Jordan"},
		{"LastOnly", Employee{Username: "jsmith", LastName: "Smith"}, "Smith"},
		{"NeitherFallsBackToUsername", Employee{Username: "jsmith"}, "jsmith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emp.FullName())
		})
	}
}
