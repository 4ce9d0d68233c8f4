// Package keys turns a passphrase into the two values a note needs: a
// symmetric key and a file identifier.
//
// Both are pure functions of the passphrase with no stored salt. The first
// time a passphrase is used there is nothing on disk to look a salt up
// from, so the passphrase itself is the whole credential and lookup key:
//
//	key    = SHA-256(passphrase)
//	fileID = hex(MD5(passphrase))
//
// These match the on-disk format of existing jaylock notes.
//
// Passphrases are held in memguard locked buffers and destroyed when the
// session ends.
package keys
