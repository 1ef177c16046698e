// Package core provides Cache, a map that lives in memory and persists to a
// single file on disk.
//
// A cache loads its backing file once, when it is created, and writes the
// whole mapping back on Flush. With AutoSync set, every Set and Delete
// flushes before returning.
//
// Example:
//
//	cache, err := core.Open[string, string]("datastore.gob", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	err = cache.Set("apple", "banana")
//	val, err := cache.Get("apple")
//
// Flush writes to a temporary file and renames it over the backing file, so
// a failed flush leaves the previous content intact. Nothing coordinates
// separate processes unless WithFileLock is used: without it, two caches on
// the same path overwrite each other and the last flush wins.
package core
