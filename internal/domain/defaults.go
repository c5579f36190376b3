package domain

// DefaultDataset returns the built-in dataset used to seed an empty database
// on first run. Seeding is create-if-absent only; an existing document is
// never overwritten.
func DefaultDataset() *Dataset {
	return &Dataset{
		Countries:       defaultCountries(),
		StatDefinitions: defaultCountryStats(),
		Categories: []string{
			"Air", "Land", "Naval", "Logistics", "Financial", "Cyber", "Unconventional",
		},
		Aircrafts:     defaultAircraft(),
		AircraftStats: defaultAircraftStats(),
		AircraftCats: []string{
			"Performance", "Stealth", "Armament", "Avionics", "Cost",
		},
	}
}

func defaultCountryStats() []StatDefinition {
	return []StatDefinition{
		{ID: "activePersonnel", Label: "Active Personnel", Category: "Logistics", Format: FormatNumber},
		{ID: "reservePersonnel", Label: "Reserve Personnel", Category: "Logistics", Format: FormatNumber},
		{ID: "defenseBudget", Label: "Defense Budget", Category: "Financial", Format: FormatCurrency},
		{ID: "tanks", Label: "Tanks", Category: "Land", Format: FormatNumber},
		{ID: "armoredVehicles", Label: "Armored Vehicles", Category: "Land", Format: FormatNumber},
		{ID: "aircraftTotal", Label: "Total Aircraft", Category: "Air", Format: FormatNumber},
		{ID: "fighters", Label: "Fighters/Interceptors", Category: "Air", Format: FormatNumber},
		{ID: "helicopters", Label: "Helicopters", Category: "Air", Format: FormatNumber},
		{ID: "navyTotal", Label: "Total Naval Assets", Category: "Naval", Format: FormatNumber},
		{ID: "aircraftCarriers", Label: "Aircraft Carriers", Category: "Naval", Format: FormatNumber},
		{ID: "submarines", Label: "Submarines", Category: "Naval", Format: FormatNumber},
		{ID: "cyberCap", Label: "Cyber Warfare", Category: "Cyber", Format: FormatSlider},
		{ID: "nuclearCap", Label: "Nuclear Deterrence", Category: "Unconventional", Format: FormatSlider},
	}
}

//nolint:funlen // Static seed data.
func defaultCountries() []Entity {
	return []Entity{
		{
			ID: "usa", Name: "United States", FlagCode: "us", Rank: 1, Score: 98.5,
			Description: "The United States retains its top spot with an unmatched combination of technological prowess, massive defense budget, and global logistical reach.",
			Stats: map[string]float64{
				"activePersonnel": 1390000, "reservePersonnel": 442000,
				"defenseBudget": 877000000000, "tanks": 5500, "armoredVehicles": 303000,
				"aircraftTotal": 13300, "fighters": 1914, "helicopters": 5584,
				"navyTotal": 484, "aircraftCarriers": 11, "submarines": 68,
				"cyberCap": 9.75, "nuclearCap": 9.5,
			},
		},
		{
			ID: "rus", Name: "Russia", FlagCode: "ru", Rank: 2, Score: 94.2,
			Description: "Russia maintains a massive stockpile of armored vehicles and a powerful navy, despite recent conflicts testing its logistical capabilities.",
			Stats: map[string]float64{
				"activePersonnel": 1150000, "reservePersonnel": 1500000,
				"defenseBudget": 86000000000, "tanks": 12566, "armoredVehicles": 151000,
				"aircraftTotal": 4182, "fighters": 773, "helicopters": 1531,
				"navyTotal": 598, "aircraftCarriers": 1, "submarines": 70,
				"cyberCap": 8.5, "nuclearCap": 10,
			},
		},
		{
			ID: "chn", Name: "China", FlagCode: "cn", Rank: 3, Score: 92.8,
			Description: "China continues its rapid naval expansion and modernization of its air force, aiming for global power projection capabilities.",
			Stats: map[string]float64{
				"activePersonnel": 2000000, "reservePersonnel": 510000,
				"defenseBudget": 292000000000, "tanks": 4950, "armoredVehicles": 174000,
				"aircraftTotal": 3284, "fighters": 1199, "helicopters": 913,
				"navyTotal": 730, "aircraftCarriers": 3, "submarines": 78,
				"cyberCap": 9.25, "nuclearCap": 8.0,
			},
		},
		{
			ID: "ind", Name: "India", FlagCode: "in", Rank: 4, Score: 86.5,
			Description: "India boasts a massive manpower pool and a growing indigenous defense industry, acting as a major regional stabilizer.",
			Stats: map[string]float64{
				"activePersonnel": 1450000, "reservePersonnel": 1155000,
				"defenseBudget": 81000000000, "tanks": 4614, "armoredVehicles": 100000,
				"aircraftTotal": 2210, "fighters": 577, "helicopters": 807,
				"navyTotal": 295, "aircraftCarriers": 2, "submarines": 18,
				"cyberCap": 7.5, "nuclearCap": 7.75,
			},
		},
		{
			ID: "kor", Name: "South Korea", FlagCode: "kr", Rank: 5, Score: 82.1,
			Description: "Technologically advanced and heavily fortified, South Korea maintains high readiness due to regional tensions.",
			Stats: map[string]float64{
				"activePersonnel": 555000, "reservePersonnel": 3100000,
				"defenseBudget": 46400000000, "tanks": 2331, "armoredVehicles": 133000,
				"aircraftTotal": 1602, "fighters": 402, "helicopters": 739,
				"navyTotal": 157, "aircraftCarriers": 2, "submarines": 22,
				"cyberCap": 8.25, "nuclearCap": 1.0,
			},
		},
		{
			ID: "gbr", Name: "United Kingdom", FlagCode: "gb", Rank: 6, Score: 79.4,
			Description: "The UK focuses on elite training, advanced intelligence, and power projection via its Queen Elizabeth-class carriers.",
			Stats: map[string]float64{
				"activePersonnel": 194000, "reservePersonnel": 37000,
				"defenseBudget": 68000000000, "tanks": 227, "armoredVehicles": 73000,
				"aircraftTotal": 663, "fighters": 119, "helicopters": 284,
				"navyTotal": 73, "aircraftCarriers": 2, "submarines": 10,
				"cyberCap": 8.75, "nuclearCap": 7.5,
			},
		},
	}
}

func defaultAircraftStats() []StatDefinition {
	return []StatDefinition{
		{ID: "maxSpeed", Label: "Max Speed (Mach)", Category: "Performance", Format: FormatNumber},
		{ID: "combatRange", Label: "Combat Range (km)", Category: "Performance", Format: FormatNumber},
		{ID: "serviceCeiling", Label: "Service Ceiling (ft)", Category: "Performance", Format: FormatNumber},
		{ID: "stealthRating", Label: "Stealth Rating", Category: "Stealth", Format: FormatSlider},
		{ID: "rcs", Label: "Radar Cross Section (m²)", Category: "Stealth", Format: FormatNumber},
		{ID: "hardpoints", Label: "Hardpoints", Category: "Armament", Format: FormatNumber},
		{ID: "payload", Label: "Payload Capacity (kg)", Category: "Armament", Format: FormatNumber},
		{ID: "radarRange", Label: "Radar Detection Range", Category: "Avionics", Format: FormatSlider},
		{ID: "ewSuite", Label: "Electronic Warfare Suite", Category: "Avionics", Format: FormatSlider},
		{ID: "unitCost", Label: "Unit Cost", Category: "Cost", Format: FormatCurrency},
	}
}

func defaultAircraft() []Entity {
	return []Entity{
		{
			ID: "f22", Name: "F-22 Raptor", Origin: "USA", Rank: 1, Score: 99.0,
			Description: "The premier 5th-generation air superiority fighter, renowned for its stealth, supercruise, and thrust vectoring capabilities.",
			Stats: map[string]float64{
				"maxSpeed": 2.25, "combatRange": 850, "serviceCeiling": 65000,
				"stealthRating": 10.0, "rcs": 0.0001, "hardpoints": 4, "payload": 2270,
				"radarRange": 9.5, "ewSuite": 9.0, "unitCost": 150000000,
			},
		},
		{
			ID: "j20", Name: "Chengdu J-20", Origin: "China", Rank: 2, Score: 94.5,
			Description: "China's heavy 5th-generation stealth fighter, designed for long-range interception and strike missions.",
			Stats: map[string]float64{
				"maxSpeed": 2.0, "combatRange": 2000, "serviceCeiling": 66000,
				"stealthRating": 8.5, "rcs": 0.01, "hardpoints": 6, "payload": 11000,
				"radarRange": 9.0, "ewSuite": 8.5, "unitCost": 110000000,
			},
		},
		{
			ID: "su57", Name: "Sukhoi Su-57", Origin: "Russia", Rank: 3, Score: 91.0,
			Description: "A multirole 5th-generation fighter combining extreme maneuverability with stealth characteristics and heavy armament.",
			Stats: map[string]float64{
				"maxSpeed": 2.0, "combatRange": 1500, "serviceCeiling": 66000,
				"stealthRating": 7.5, "rcs": 0.1, "hardpoints": 10, "payload": 10000,
				"radarRange": 8.5, "ewSuite": 8.0, "unitCost": 40000000,
			},
		},
		{
			ID: "rafale", Name: "Dassault Rafale", Origin: "France", Rank: 4, Score: 88.5,
			Description: "A highly versatile omnirole 4.5 generation fighter with advanced avionics (SPECTRA) and nuclear capability.",
			Stats: map[string]float64{
				"maxSpeed": 1.8, "combatRange": 1850, "serviceCeiling": 50000,
				"stealthRating": 5.5, "rcs": 1.0, "hardpoints": 14, "payload": 9500,
				"radarRange": 8.0, "ewSuite": 9.5, "unitCost": 115000000,
			},
		},
	}
}
