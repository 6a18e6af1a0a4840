package domain

// Market represents a geographic grouping of branches
type Market struct {
	ID   int64
	Name string
}

// Branch represents one office where agents meet customers.
// TimeZone is an IANA zone identifier; all slot times of the branch's
// agents are interpreted in this zone.
type Branch struct {
	ID       int64
	Name     string
	Address  string
	TimeZone string
	MarketID int64
}

// Service represents a bookable service type from the fixed catalog
type Service struct {
	ID   int64
	Name string
}

// Agent represents an employee who can be booked.
// An agent belongs to exactly one branch and offers a subset of services.
// ScheduleOwner marks the agent whose schedule is maintained by the
// slot generator.
type Agent struct {
	ID            int64
	Name          string
	Email         string
	BranchID      int64
	ScheduleOwner bool
	Services      []Service
}

// OffersService returns true if the agent offers the named service
func (a *Agent) OffersService(name string) bool {
	for _, svc := range a.Services {
		if svc.Name == name {
			return true
		}
	}
	return false
}
