// Package catalog holds the fixed pick lists the dashboard offers:
// candidate names, coaches and program attributes. The backend expects
// values from these lists verbatim.
package catalog

// Coach is a selectable coach entry.
type Coach struct {
	ID   int
	Name string
}

// FirstNames and LastNames are the candidate name pick lists.
var FirstNames = []string{
	"Cherie", "Lauren", "Dean", "Maria", "Miranda", "Adrienne", "John",
	"Brad", "David", "Samantha", "Allister", "Yujia", "Minu", "Sidd",
	"Darren", "Rebecca", "Josephine", "Jodie", "Tommy", "Roy", "Glenn",
	"Nick", "Joey",
}

var LastNames = []string{
	"Johnson", "Smith", "Williams", "Popovic", "Scott", "Hecimovic",
	"Chalmers", "Hunt", "Wang", "Elgie", "Caruana", "Schwilk",
	"Greenhill", "Talbot", "Fioravanti", "Sharma", "Cadd", "Teslya",
	"Gough", "Cartwright", "Vulic", "Nallaiah", "Troy",
}

// Coaches is the coach pick list, sorted by name.
var Coaches = []Coach{
	{ID: 515, Name: "Andrea Van Der Merwe"},
	{ID: 513, Name: "Anne Hutton"},
	{ID: 504, Name: "Brooke Rutledge"},
	{ID: 514, Name: "Bryan Waters"},
	{ID: 502, Name: "Claire Thomas"},
	{ID: 508, Name: "Claire Austin"},
	{ID: 511, Name: "Cathy Thorpe"},
	{ID: 507, Name: "Carla Nicholson"},
	{ID: 509, Name: "Elizabeth Logan"},
	{ID: 510, Name: "Jenni Simmons"},
	{ID: 503, Name: "Nigel Thompson"},
	{ID: 505, Name: "Mary Jane Cormack"},
	{ID: 506, Name: "Paul Di Michiel"},
	{ID: 501, Name: "Sarah Felice"},
	{ID: 512, Name: "Simon Bruce"},
}

// ProgramNames, ProgramTypes and ProgramDurations are the program
// attribute pick lists.
var ProgramNames = []string{
	"Executive Leadership Program",
	"Sales Accelerator",
	"Tech Mentorship",
}

var ProgramTypes = []string{
	"COACHING",
	"REVIEW",
	"ASSESSMENT",
}

var ProgramDurations = []string{
	"1_MONTH",
	"2_MONTH",
	"3_MONTHS",
	"6_MONTHS",
	"12_MONTHS",
}

// CoachByID looks up a coach by its backend id.
func CoachByID(id int) (Coach, bool) {
	for _, c := range Coaches {
		if c.ID == id {
			return c, true
		}
	}
	return Coach{}, false
}

// ValidDuration reports whether d is one of the known program durations.
func ValidDuration(d string) bool {
	for _, known := range ProgramDurations {
		if known == d {
			return true
		}
	}
	return false
}
