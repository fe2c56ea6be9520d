package types

type NavbarData struct {
	IsAuthenticated bool
	Username        string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type HomePageData struct {
	BasePageData
	Stats  Statistics
	Events []*Event
}

type LoginPageData struct {
	BasePageData
	Message string
	Error   string
}

type DashboardPageData struct {
	BasePageData
	Success  string
	Error    string
	Stats    Statistics
	Events   []*Event
	Partners []*Partner
}

type AddEventPageData struct {
	BasePageData
	Error string
}

type AddPartnerPageData struct {
	BasePageData
	Error string
}

type EventDetailPageData struct {
	BasePageData
	Event *Event
}

type NotFoundPageData struct {
	BasePageData
	Path string
}
