// Package auth manages the local administrator accounts: password login,
// account creation and password changes. Passwords are stored as Argon2id
// hashes (see models.HashPassword).
package auth
