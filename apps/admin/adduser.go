package main

import (
	"time"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	lookup := uname
	if lookup == "" {
		lookup = email
	}

	now := time.Now().UTC()
	var creating bool
	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(lookup)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		creating = true
		usr = user.User{
			ID:        core.NewID("usr-"),
			Username:  uname,
			Email:     email,
			CreatedAt: now,
		}
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if creating {
		usr.IsActive = true
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		isActive := true
		_, err = cli.usrRepo.UpdateUser(usr, &isActive)
	}
	return err
}
