// Package encryption provides the fragment cipher: random alphanumeric keys and
// AES-256 in CBC mode with PKCS#7 padding, framed as IV || ciphertext.
//
// Keys are used as raw bytes, without a key derivation step, and the scheme carries
// no authentication tag. A corrupted ciphertext whose padding still validates decrypts
// to garbage without an error.
package encryption
