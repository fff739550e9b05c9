// Package skipkv implements an ordered key/value index on a probabilistic
// skip list.
//
// A list is guarded by one read/write lock: Insert, Delete, Load and Clear
// are exclusive, while Search, Dump and iteration may run together. Records
// can be dumped to and loaded from a line-oriented text file where each line
// is a key, a single-character delimiter (":" by default) and a value.
package skipkv
