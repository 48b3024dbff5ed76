// Package housing holds the listing domain model, the free-text budget
// parser and the in-process listing filter.
package housing

import "time"

// Listing is one property record from the listings collection.
// Prices are in ten-thousand TWD (萬). Numeric fields are pointers because
// seeded documents may omit them; a listing without a price is never
// excluded by a budget filter.
type Listing struct {
	ID            string    `firestore:"-"`
	Title         string    `firestore:"title"`
	Genre         string    `firestore:"genre"`
	Address       string    `firestore:"address"`
	ImageURL      string    `firestore:"image_url"`
	Detail1       string    `firestore:"detail1"`
	Detail2       string    `firestore:"detail2"`
	Status        string    `firestore:"status"`
	ProjectName   string    `firestore:"project_name"`
	Exclusive     string    `firestore:"exclusive"`
	Pattern       string    `firestore:"pattern"`
	PatternURL    string    `firestore:"pattern_url"`
	Old           string    `firestore:"old"`
	Height        string    `firestore:"height"`
	VideoURI      string    `firestore:"video_uri"`
	MapURI        string    `firestore:"map_uri"`
	Text          string    `firestore:"text"`
	Price         *float64  `firestore:"price"`
	Room          *int      `firestore:"room"`
	SquareMeters  *float64  `firestore:"square_meters"`
	SquareMeters2 *float64  `firestore:"square_meters2"`
	Top           bool      `firestore:"top"`
	ParkingSpace  bool      `firestore:"parking_space"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

// Preference is a user's saved subscription condition, keyed by LINE user
// id in the forms collection. Upserts merge: fields absent from a new
// submission keep their stored value.
type Preference struct {
	UserID    string    `firestore:"user_id"`
	Budget    string    `firestore:"budget"`
	Room      string    `firestore:"room"`
	Genre     string    `firestore:"genre"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Booking is one viewing appointment. Written once, never updated.
type Booking struct {
	UserID      string    `firestore:"userId"`
	DisplayName string    `firestore:"displayName"`
	Name        string    `firestore:"name"`
	Phone       string    `firestore:"phone"`
	Timeslot    string    `firestore:"timeslot"`
	TimeslotCN  string    `firestore:"timeslot_cn"`
	HouseID     string    `firestore:"houseId"`
	HouseTitle  string    `firestore:"houseTitle"`
	CreatedAt   time.Time `firestore:"created_at"`
}

// timeslotLabels maps booking form slot codes to their Chinese display
// strings. Unknown codes pass through verbatim.
var timeslotLabels = map[string]string{
	"weekday-morning":   "平日早上",
	"weekday-afternoon": "平日下午",
	"weekday-evening":   "平日晚上",
	"weekend-morning":   "假日早上",
	"weekend-afternoon": "假日下午",
	"weekend-evening":   "假日晚上",
}

// TimeslotLabel returns the Chinese display label for a booking slot code.
func TimeslotLabel(slot string) string {
	if label, ok := timeslotLabels[slot]; ok {
		return label
	}
	return slot
}
