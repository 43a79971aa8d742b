// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const placesCSV = `Place_Id,Place_Name,Description,Category,City,Price,Rating
1,Monumen Nasional,National monument,Budaya,Jakarta,20000,4.6
2,Dunia Fantasi,Theme park,Taman Hiburan,Jakarta,270000,4.6
3,Pantai Ancol,Beach,Bahari,Jakarta,,4.5
4,Kebun Raya,Botanical garden,Kebun,Bogor,15000,4.4
`

const usersCSV = `User_Id,Location,Age
1,"Semarang, Jawa Tengah",20
2,"Bekasi, Jawa Barat",30
3,"Cirebon, Jawa Barat",0
`

// User 1 rates place 2 twice with identical rows; the duplicate is dropped.
const ratingsCSV = `User_Id,Place_Id,Place_Ratings
1,1,3
1,2,5
1,2,5
1,3,5
2,3,4
2,1,2
3,4,1
`

// writeFixtures writes the three CSVs to a temp dir and returns a Config
// pointing at them.
func writeFixtures(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	cfg := DefaultConfig()
	cfg.PlacesURL = write("places.csv", placesCSV)
	cfg.UsersURL = write("users.csv", usersCSV)
	cfg.RatingsURL = write("ratings.csv", ratingsCSV)
	cfg.CacheDisabled = true
	return cfg
}
