package dare

// Difficulty ranks how intense a dare is.
type Difficulty string

const (
	DifficultyTitillating Difficulty = "titillating"
	DifficultyArousing    Difficulty = "arousing"
	DifficultyExplicit    Difficulty = "explicit"
	DifficultyEdge        Difficulty = "edge"
	DifficultyHardcore    Difficulty = "hardcore"
)

// Difficulties lists every difficulty from mildest to most intense.
var Difficulties = []Difficulty{
	DifficultyTitillating,
	DifficultyArousing,
	DifficultyExplicit,
	DifficultyEdge,
	DifficultyHardcore,
}

var difficultyInfo = map[Difficulty]struct {
	label string
	desc  string
	rank  int
}{
	DifficultyTitillating: {"Titillating", "Fun, flirty, and easy.", 1},
	DifficultyArousing:    {"Arousing", "Moderate challenge with more intensity.", 2},
	DifficultyExplicit:    {"Explicit", "Bold tasks for experienced participants.", 3},
	DifficultyEdge:        {"Edge", "Pushes limits. Consent is checked twice.", 4},
	DifficultyHardcore:    {"Hardcore", "Maximum intensity. Opt-in only.", 5},
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyInfo[d]
	return ok
}

// Label is the display name, or the raw value when unknown.
func (d Difficulty) Label() string {
	if i, ok := difficultyInfo[d]; ok {
		return i.label
	}
	return string(d)
}

func (d Difficulty) Description() string { return difficultyInfo[d].desc }

// Rank orders difficulties; unknown values rank 0.
func (d Difficulty) Rank() int { return difficultyInfo[d].rank }

// Status is the lifecycle state shared by dares, acts and switch games.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusGraded     Status = "graded"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
)

var statusLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusGraded:     "Graded",
	StatusRejected:   "Rejected",
	StatusCancelled:  "Cancelled",
	StatusExpired:    "Expired",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Open reports whether the item can still be acted on.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// Role is a user's permission level.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleLabels = map[Role]string{
	RoleUser:      "User",
	RoleModerator: "Moderator",
	RoleAdmin:     "Admin",
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Privacy controls who can see a dare.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

var privacyLabels = map[Privacy]string{
	PrivacyPublic:  "Public",
	PrivacyFriends: "Friends only",
	PrivacyPrivate: "Private",
}

func (p Privacy) Valid() bool {
	_, ok := privacyLabels[p]
	return ok
}

func (p Privacy) Label() string {
	if l, ok := privacyLabels[p]; ok {
		return l
	}
	return string(p)
}
