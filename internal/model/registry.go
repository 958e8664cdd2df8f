package model

// All returns every model in migration order (referenced tables first).
func All() []interface{} {
	return []interface{}{
		&Organization{},
		&User{},
		&Status{},
		&Tag{},
		&AssetType{},
		&Coverage{},
		&ServiceLevel{},
		&Manufacturer{},
		&Product{},
		&Location{},
		&Customer{},
		&Contact{},
		&CustomerStatus{},
		&Asset{},
		&Warranty{},
	}
}
