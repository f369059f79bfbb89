// Package source fetches corpus documents.
//
// Documents use the scrollmapper bible_databases JSON layout:
//
//	{"translation": "...", "books": [{"name": "Genesis", "chapters": [
//	    {"chapter": 1, "verses": [{"verse": 1, "text": "..."}]}]}]}
//
// HTTPFetcher downloads them; FileFetcher reads them from disk.
package source
