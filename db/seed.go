package db

import (
	"context"

	"radiotrack/models"
)

// starterItems is the equipment loaded into a brand-new database so the
// app is usable before the first real entry.
var starterItems = []models.Item{
	{Name: "Motorola XTS 5000 Portable Radio", Category: "Portable Radios", Location: "Control Center", Condition: "Excellent", Notes: "VHF 136-174 MHz, 128 channels"},
	{Name: "Kenwood TK-3402U16P ProTalk Portable", Category: "Portable Radios", Location: "Communications Room", Condition: "Good", Notes: "UHF 400-470 MHz, 16 channels"},
	{Name: "Icom IC-F4029SDR Portable Radio", Category: "Portable Radios", Location: "North Gate", Condition: "Fair", Notes: "VHF 136-174 MHz, 128 channels"},
	{Name: "Motorola CDM1550 LS+ Mobile Radio", Category: "Mobile Radios", Location: "Transport Vehicles", Condition: "Good", Notes: "VHF 136-174 MHz, 160 channels"},
	{Name: "Kenwood TM-281A Mobile Radio", Category: "Mobile Radios", Location: "Perimeter Patrol", Condition: "Excellent", Notes: "VHF 136-174 MHz, 200 channels"},
	{Name: "Motorola GR1225 Base Station", Category: "Base Station Radios", Location: "Communications Room", Condition: "Good", Notes: "VHF 136-174 MHz, 8 channels"},
	{Name: "Kenwood TKR-850 Base Station", Category: "Base Station Radios", Location: "Tower 1", Condition: "Excellent", Notes: "UHF 400-470 MHz, 32 channels"},
	{Name: "Larsen NMO150B VHF Antenna", Category: "Antennas", Location: "Tower 2", Condition: "Good", Notes: "150-174 MHz, Unity gain"},
	{Name: "Comet GP-9M UHF Antenna", Category: "Antennas", Location: "Tower 3", Condition: "Excellent", Notes: "430-440 MHz, 8.5 dBi gain"},
	{Name: "Diamond NR770HB Dual Band Antenna", Category: "Antennas", Location: "Communications Room", Condition: "Fair", Notes: "144/440 MHz, 3.0/5.5 dBi gain"},
	{Name: "Motorola PMNN4407AR Battery Pack", Category: "Batteries & Chargers", Location: "Storage Warehouse", Condition: "Excellent", Notes: "7.4V 2200mAh Li-Ion"},
	{Name: "Kenwood KSC-35S Rapid Charger", Category: "Batteries & Chargers", Location: "Control Center", Condition: "Good", Notes: "For TK series portables"},
	{Name: "Icom BP-280 Battery Pack", Category: "Batteries & Chargers", Location: "Maintenance Shop", Condition: "Fair", Notes: "7.2V 1650mAh Ni-MH"},
	{Name: "Motorola HMN1080B Speaker Microphone", Category: "Microphones", Location: "Control Center", Condition: "Good", Notes: "IP57 rated, noise canceling"},
	{Name: "Kenwood KMC-45 Speaker Microphone", Category: "Microphones", Location: "Communications Room", Condition: "Excellent", Notes: "Heavy duty, IP55 rated"},
	{Name: "RG-213 Coaxial Cable 50ft", Category: "Cables & Accessories", Location: "Storage Warehouse", Condition: "Good", Notes: "Low loss, PL-259 connectors"},
	{Name: "Antenna Mount NMO Type", Category: "Cables & Accessories", Location: "Maintenance Shop", Condition: "Excellent", Notes: "Stainless steel, weather resistant"},
	{Name: "Motorola R2670B Service Monitor", Category: "Test Equipment", Location: "Maintenance Shop", Condition: "Fair", Notes: "30-1000 MHz, spectrum analyzer"},
	{Name: "Bird 43 Wattmeter", Category: "Test Equipment", Location: "Communications Room", Condition: "Good", Notes: "RF power measurement 0.45-2700 MHz"},
	{Name: "Motorola RIB Programming Box", Category: "Programming Equipment", Location: "Maintenance Shop", Condition: "Excellent", Notes: "Radio Interface Box with cables"},
	{Name: "Kenwood KPG-111D Programming Software", Category: "Programming Equipment", Location: "Administrative Office", Condition: "Good", Notes: "Version 3.0 with USB interface"},
}

// SeedItems inserts the starter inventory once, when the items table is empty.
func (r *Repo) SeedItems(ctx context.Context) (int, error) {
	n, err := r.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	items := make([]models.Item, len(starterItems))
	copy(items, starterItems)
	if err := r.DB.WithContext(ctx).Create(&items).Error; err != nil {
		return 0, err
	}
	return len(items), nil
}
