// Package auth defines wallet sign-in: single-use nonces, the signed
// challenge message and the bearer session issued after verification.
package auth
