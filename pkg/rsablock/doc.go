// Package rsablock implements textbook RSA over decimal BigInts, applied block by block.
//
// Plaintext is PKCS#7 padded to a multiple of BlockSize bytes. Each 16-byte block is read as a
// big-endian 128-bit integer m and encrypted as c = m^e mod n. Every c is serialized as its
// little-endian decimal digits (one byte per digit, values 0..9), blocks are joined with the
// Delimiter byte 0xFF, and the whole sequence is hex encoded.
//
// Moduli shorter than MinModulusDigits are refused, since a 128-bit block would not always be
// smaller than the modulus and would lose information when reduced.
//
// This package is for study. It has no side-channel hardening and no message padding scheme
// beyond PKCS#7 block alignment.
package rsablock
