package listings

import "time"

// Exam lifecycle states.
const (
	ExamUpcoming  = "upcoming"
	ExamOngoing   = "ongoing"
	ExamCompleted = "completed"
)

// Job is a government job notification browsable by state.
type Job struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Department      string    `json:"department" bson:"department"`
	State           string    `json:"state" bson:"state"`
	Category        string    `json:"category" bson:"category"`
	Vacancy         int       `json:"vacancy" bson:"vacancy"`
	LastDate        string    `json:"lastDate" bson:"lastDate"`
	Salary          string    `json:"salary" bson:"salary"`
	Qualification   string    `json:"qualification" bson:"qualification"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	ApplicationLink string    `json:"applicationLink,omitempty" bson:"applicationLink,omitempty"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Exam is an exam-calendar entry covering the application window and result
// schedule of a recruitment exam.
type Exam struct {
	ID                   string     `json:"id" bson:"_id,omitempty"`
	Title                string     `json:"title" bson:"title"`
	ExamName             string     `json:"examName" bson:"examName"`
	ExamDate             time.Time  `json:"examDate" bson:"examDate"`
	ApplicationStartDate time.Time  `json:"applicationStartDate" bson:"applicationStartDate"`
	ApplicationEndDate   time.Time  `json:"applicationEndDate" bson:"applicationEndDate"`
	ResultDate           *time.Time `json:"resultDate,omitempty" bson:"resultDate,omitempty"`
	Status               string     `json:"status" bson:"status"`
	Description          string     `json:"description,omitempty" bson:"description,omitempty"`
	Organization         string     `json:"organization" bson:"organization"`
	Category             string     `json:"category" bson:"category"`
	State                string     `json:"state,omitempty" bson:"state,omitempty"`
	NotificationLink     string     `json:"notificationLink,omitempty" bson:"notificationLink,omitempty"`
	ApplicationLink      string     `json:"applicationLink,omitempty" bson:"applicationLink,omitempty"`
	IsActive             bool       `json:"isActive" bson:"isActive"`
	CreatedAt            time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Download is a dated link listing. Results, admit cards, answer keys, and
// syllabus entries share this shape and live in separate collections.
type Download struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	State        string    `json:"state" bson:"state"`
	ExamDate     string    `json:"examDate,omitempty" bson:"examDate,omitempty"`
	ResultDate   string    `json:"resultDate,omitempty" bson:"resultDate,omitempty"`
	DownloadLink string    `json:"downloadLink" bson:"downloadLink"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FooterLink is a labeled URL rendered in the site footer.
type FooterLink struct {
	Text string `json:"text" bson:"text"`
	URL  string `json:"url" bson:"url"`
}

// SocialLink points to a social media presence.
type SocialLink struct {
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

// ContactInfo is the footer's contact block.
type ContactInfo struct {
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
}

// NewsletterSignup configures the footer newsletter box.
type NewsletterSignup struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Placeholder string `json:"placeholder" bson:"placeholder"`
}

// Footer is the site-wide footer content; the public page serves the single
// active document.
type Footer struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description" bson:"description"`
	Links            []FooterLink     `json:"links" bson:"links"`
	SocialLinks      []SocialLink     `json:"socialLinks" bson:"socialLinks"`
	ContactInfo      ContactInfo      `json:"contactInfo" bson:"contactInfo"`
	NewsletterSignup NewsletterSignup `json:"newsletterSignup" bson:"newsletterSignup"`
	Copyright        string           `json:"copyright" bson:"copyright"`
	IsActive         bool             `json:"isActive" bson:"isActive"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Contact is a visitor message submitted through the contact form; only
// admins can read them.
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ListQuery is the common pagination/search input for listing endpoints.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}
