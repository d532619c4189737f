// Package users defines wallet owners and their editable profiles.
package users
