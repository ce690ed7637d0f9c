// Package archive splits a file into independently encrypted fragments plus an
// index, and joins them back.
//
// An archive directory holds fragment files named chunk1..chunkN and an index.json
// binding the original file name to the fragment count, one key per fragment, and
// whether the fragments carry a zlib stream instead of raw file bytes. Fragment
// ordinals are 1-based and are the only ordering: raw bytes are concatenated and
// compressed slices are inflated strictly in that order.
//
// Compressed archives cut the zlib stream into fragments of exactly the chunk size,
// with the remainder in the last fragment. Tools that flush whatever has accumulated
// once the chunk size is reached produce larger fragments and a different count for
// the same input; both layouts join the same way, since only the concatenation of
// fragments matters.
//
// Fragments carry no authentication tag. A flipped ciphertext bit usually breaks
// the padding and is reported as a DecryptionError for that fragment, but a
// corrupted fragment whose padding still validates joins as garbage (uncompressed)
// or fails only when the inflater hits it. Bytes trailing the zlib end marker, in
// the last fragment or in extra fragments, are reported as ErrDecryption.
//
// Archives are write-once. A split that fails midway leaves whatever fragments it
// had written; the joiner's validation reports the gaps before anything is written.
package archive
