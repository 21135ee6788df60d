package domain

// Channel is a point-in-time snapshot of a Telegram broadcast channel as
// seen during one run. Nothing here is persisted between runs.
type Channel struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Title    string `json:"title"`
	Private  bool   `json:"private"`
}

// Folder is a Telegram dialog filter ("folder") by its visible title.
type Folder struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// DesiredFeed is one feed the reader application should end up with.
// Key is the lowercased feed URL and is the sole join key against
// existing feeds.
type DesiredFeed struct {
	Category     string `json:"category"`
	ChannelID    int64  `json:"channel_id"`
	ChannelTitle string `json:"channel_title"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Key          string `json:"key"`
}

// ExistingFeed is a feed read back from the reader application. Key is
// empty when the URL could not be parsed; such feeds are treated as
// unmanaged.
type ExistingFeed struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Key        string `json:"key"`
}

// ExistingCategory is a category read back from the reader application.
type ExistingCategory struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// SkippedChannel records a channel that produced no DesiredFeed and why.
type SkippedChannel struct {
	ChannelTitle string     `json:"channel_title"`
	Folder       string     `json:"folder"`
	Reason       SkipReason `json:"reason"`
	// Detail carries the winning category for conflict skips.
	Detail string `json:"detail,omitempty"`
}

// Action is a single step of the reconciliation plan. Only the fields
// relevant to its Type are set; FeedID is zero for creates, CategoryID
// is zero when the category does not exist yet at planning time.
type Action struct {
	Type         ActionType `json:"type"`
	Category     string     `json:"category"`
	CategoryID   int64      `json:"category_id,omitempty"`
	FeedID       int64      `json:"feed_id,omitempty"`
	URL          string     `json:"url,omitempty"`
	Title        string     `json:"title,omitempty"`
	OldTitle     string     `json:"old_title,omitempty"`
	ChannelTitle string     `json:"channel_title,omitempty"`
}

// ActionResult is the executor's verdict on one action.
type ActionResult struct {
	Action Action       `json:"action"`
	Status ActionStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
	Err    error        `json:"-"`
}

// ExecutionReport is the ordered record of one execution pass.
type ExecutionReport struct {
	Results []ActionResult `json:"results"`
	DryRun  bool           `json:"dry_run"`
}

// Summary is the aggregate outcome of a run, consumed by the notifier
// and the CLI. Counts cover feed-level actions; category actions appear
// only in the itemized lists.
type Summary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
	InSync  int `json:"in_sync"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	CreatedFeeds    []ActionResult   `json:"created_feeds,omitempty"`
	UpdatedTitles   []ActionResult   `json:"updated_titles,omitempty"`
	RemovedFeeds    []ActionResult   `json:"removed_feeds,omitempty"`
	SkippedActions  []ActionResult   `json:"skipped_actions,omitempty"`
	FailedActions   []ActionResult   `json:"failed_actions,omitempty"`
	SkippedChannels []SkippedChannel `json:"skipped_channels,omitempty"`
	UnmanagedFeeds  []ExistingFeed   `json:"unmanaged_feeds,omitempty"`

	DryRun bool `json:"dry_run"`
}

// HasChanges reports whether the run touched (or, in dry-run, would
// touch) the reader application.
func (s Summary) HasChanges() bool {
	return s.Created+s.Updated+s.Removed > 0
}
