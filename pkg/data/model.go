package data

// Message types understood by the platform. Exactly one content field is
// meaningful per type; the rest stay null on the wire.
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageVideo  = "video"
	MessageAudio  = "audio"
	MessageStatus = "status"
)

type User struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Photo     *string `json:"photo"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Story struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        User     `json:"author"`
	Category      Category `json:"category"`
	Image         *string  `json:"image"`
	LikesCount    int      `json:"likes_count"`
	CommentsCount int      `json:"comments_count"`
	Views         int      `json:"views"`
	IsLiked       bool     `json:"is_liked"`
	IsSaved       bool     `json:"is_saved"`
}

type Episode struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Story int    `json:"story"`
}

type Character struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Story int    `json:"story"`
	Color string `json:"color"`
}

// Message carries a fractional Order used for relative sequencing; inserting
// between two siblings only needs a midpoint, never a renumbering pass.
type Message struct {
	ID            int        `json:"id"`
	MessageType   string     `json:"message_type"`
	Order         float64    `json:"order"`
	Character     *Character `json:"character"`
	Episode       int        `json:"episode"`
	TextContent   string     `json:"text_content"`
	ImageContent  *string    `json:"image_content"`
	VideoContent  *string    `json:"video_content"`
	AudioContent  *string    `json:"audio_content"`
	StatusContent string     `json:"status_content"`
}

// Content returns the content field matching the message type.
func (m *Message) Content() string {
	switch m.MessageType {
	case MessageStatus:
		return m.StatusContent
	case MessageImage:
		if m.ImageContent != nil {
			return *m.ImageContent
		}
	case MessageVideo:
		if m.VideoContent != nil {
			return *m.VideoContent
		}
	case MessageAudio:
		if m.AudioContent != nil {
			return *m.AudioContent
		}
	default:
		return m.TextContent
	}
	return ""
}

type Comment struct {
	ID         int    `json:"id"`
	Author     User   `json:"author"`
	Story      int    `json:"story"`
	Text       string `json:"text"`
	LikesCount int    `json:"likes_count"`
	IsLiked    bool   `json:"is_liked"`
}

type Notification struct {
	ID        int    `json:"id"`
	Recipient int    `json:"recipient"`
	Sender    *User  `json:"sender"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// Progress is the last-read position within a story, as reported to and
// returned by the update-status endpoint.
type Progress struct {
	Story   int `json:"story"`
	Episode int `json:"episode"`
	Message int `json:"message"`
}

type PageLinks struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Page is the pagination envelope every list endpoint wraps its results in.
type Page[T any] struct {
	Links    PageLinks `json:"links"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Results  []T       `json:"results"`
}
