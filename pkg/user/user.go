package user

type Language string

const (
	English  Language = "en"
	Romanian Language = "ro"
)

type User struct {
	Id        int
	Uid       string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
	Settings  Settings
}

type Settings struct {
	Timezone string
	Language Language
}
