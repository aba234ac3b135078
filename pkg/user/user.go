package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Email       string
	Settings    Settings
}

type Settings struct {
	// Currency is the ISO 4217 code used for display amounts.
	Currency string
	Timezone string
}
