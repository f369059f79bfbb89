// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package canon

// book pairs a canonical identifier with the raw source names that map to it.
type book struct {
	id    string
	names []string
}

// canonBooks lists the 66 books in canonical order. The first name of each
// entry is the ScrollMapper spelling; the rest are common variants.
var canonBooks = []book{
	{"GEN", []string{"Genesis"}},
	{"EXO", []string{"Exodus"}},
	{"LEV", []string{"Leviticus"}},
	{"NUM", []string{"Numbers"}},
	{"DEU", []string{"Deuteronomy"}},
	{"JOS", []string{"Joshua"}},
	{"JDG", []string{"Judges"}},
	{"RUT", []string{"Ruth"}},
	{"1SA", []string{"I Samuel", "1 Samuel", "First Samuel"}},
	{"2SA", []string{"II Samuel", "2 Samuel", "Second Samuel"}},
	{"1KI", []string{"I Kings", "1 Kings", "First Kings"}},
	{"2KI", []string{"II Kings", "2 Kings", "Second Kings"}},
	{"1CH", []string{"I Chronicles", "1 Chronicles", "First Chronicles"}},
	{"2CH", []string{"II Chronicles", "2 Chronicles", "Second Chronicles"}},
	{"EZR", []string{"Ezra"}},
	{"NEH", []string{"Nehemiah"}},
	{"EST", []string{"Esther"}},
	{"JOB", []string{"Job"}},
	{"PSA", []string{"Psalms", "Psalm"}},
	{"PRO", []string{"Proverbs"}},
	{"ECC", []string{"Ecclesiastes"}},
	{"SNG", []string{"Song of Solomon", "Song of Songs", "Canticles"}},
	{"ISA", []string{"Isaiah"}},
	{"JER", []string{"Jeremiah"}},
	{"LAM", []string{"Lamentations"}},
	{"EZK", []string{"Ezekiel"}},
	{"DAN", []string{"Daniel"}},
	{"HOS", []string{"Hosea"}},
	{"JOL", []string{"Joel"}},
	{"AMO", []string{"Amos"}},
	{"OBA", []string{"Obadiah"}},
	{"JON", []string{"Jonah"}},
	{"MIC", []string{"Micah"}},
	{"NAM", []string{"Nahum"}},
	{"HAB", []string{"Habakkuk"}},
	{"ZEP", []string{"Zephaniah"}},
	{"HAG", []string{"Haggai"}},
	{"ZEC", []string{"Zechariah"}},
	{"MAL", []string{"Malachi"}},
	{"MAT", []string{"Matthew"}},
	{"MRK", []string{"Mark"}},
	{"LUK", []string{"Luke"}},
	{"JHN", []string{"John"}},
	{"ACT", []string{"Acts"}},
	{"ROM", []string{"Romans"}},
	{"1CO", []string{"I Corinthians", "1 Corinthians", "First Corinthians"}},
	{"2CO", []string{"II Corinthians", "2 Corinthians", "Second Corinthians"}},
	{"GAL", []string{"Galatians"}},
	{"EPH", []string{"Ephesians"}},
	{"PHP", []string{"Philippians"}},
	{"COL", []string{"Colossians"}},
	{"1TH", []string{"I Thessalonians", "1 Thessalonians", "First Thessalonians"}},
	{"2TH", []string{"II Thessalonians", "2 Thessalonians", "Second Thessalonians"}},
	{"1TI", []string{"I Timothy", "1 Timothy", "First Timothy"}},
	{"2TI", []string{"II Timothy", "2 Timothy", "Second Timothy"}},
	{"TIT", []string{"Titus"}},
	{"PHM", []string{"Philemon"}},
	{"HEB", []string{"Hebrews"}},
	{"JAS", []string{"James"}},
	{"1PE", []string{"I Peter", "1 Peter", "First Peter"}},
	{"2PE", []string{"II Peter", "2 Peter", "Second Peter"}},
	{"1JN", []string{"I John", "1 John", "First John"}},
	{"2JN", []string{"II John", "2 John", "Second John"}},
	{"3JN", []string{"III John", "3 John", "Third John"}},
	{"JUD", []string{"Jude"}},
	{"REV", []string{"Revelation of John", "Revelation", "Revelations", "The Revelation"}},
}

// DefaultTable returns a fresh copy of the built-in raw name → canonical ID table.
func DefaultTable() map[string]string {
	table := make(map[string]string, len(canonBooks)*2)
	for _, b := range canonBooks {
		for _, name := range b.names {
			table[name] = b.id
		}
	}
	return table
}

// CanonicalIDs returns the canonical book IDs in canonical order.
func CanonicalIDs() []string {
	ids := make([]string, len(canonBooks))
	for i, b := range canonBooks {
		ids[i] = b.id
	}
	return ids
}
