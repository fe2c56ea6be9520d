package types

type Statistics struct {
	TotalEvents       int      `json:"totalEvents"`
	TotalPartners     int      `json:"totalPartners"`
	TotalPeopleHelped int64    `json:"totalPeopleHelped"`
	RecentEvents      []*Event `json:"recentEvents"`
}
