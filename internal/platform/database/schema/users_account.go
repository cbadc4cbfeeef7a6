// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema names every table and column of the yamdb database.

Repositories build SQL from these descriptors instead of repeating string
literals, so a column rename touches one file. The migrations under
data/migrations are the source of truth; this package mirrors them.
*/
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                string
	ID                   string
	Username             string
	Email                string
	FirstName            string
	LastName             string
	Bio                  string
	Role                 string
	IsSuperuser          string
	ConfirmationCodeHash string
	CreatedAt            string
	UpdatedAt            string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                "users.account",
	ID:                   "id",
	Username:             "username",
	Email:                "email",
	FirstName:            "firstname",
	LastName:             "lastname",
	Bio:                  "bio",
	Role:                 "role",
	IsSuperuser:          "issuperuser",
	ConfirmationCodeHash: "confirmationcodehash",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

// Columns returns the profile columns in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FirstName, t.LastName,
		t.Bio, t.Role, t.IsSuperuser, t.CreatedAt, t.UpdatedAt,
	}
}
