package models

// AdminOverview — сводка для админской панели.
type AdminOverview struct {
	Users      int `json:"users"`
	Magazines  int `json:"magazines"`
	Articles   int `json:"articles"`
	ActiveSubs int `json:"activeSubs"`
}
