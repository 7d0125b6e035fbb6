// Package domain holds the records and publication variants of the news feed
package domain

// Kind tags a publication variant with its canonical type name
type Kind string

const (
	// KindNews is a news item stamped with the ingest date and time
	KindNews Kind = "News"
	// KindPrivateAd is a classified ad with an expiration date
	KindPrivateAd Kind = "Private_ad"
	// KindJoke is a joke with a hashtag and a fun index
	KindJoke Kind = "Joke"
)

// Kinds lists the variants in table order
var Kinds = []Kind{KindNews, KindPrivateAd, KindJoke}

// Field names used by every input format
const (
	KeyType           = "Type"
	KeyText           = "Text"
	KeyCity           = "City"
	KeyExpirationDate = "Expiration_date"
	KeyHashtag        = "Hashtag"
)

// ExtraKey returns the discriminator field for k, or "" for unknown kinds
func ExtraKey(k Kind) string {
	switch k {
	case KindNews:
		return KeyCity
	case KindPrivateAd:
		return KeyExpirationDate
	case KindJoke:
		return KeyHashtag
	}
	return ""
}

// Field is one key/value pair of a record
type Field struct {
	Key   string
	Value string
}

// Record is an ordered field mapping decoded from one input entry.
// Keys are unique; Set replaces in place so order is kept
type Record []Field

// NewRecord builds a record from alternating keys and values
func NewRecord(kv ...string) Record {
	r := make(Record, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Get returns the value for key and whether it was present
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value for key or ""
func (r Record) Value(key string) string {
	v, _ := r.Get(key)
	return v
}

// Set replaces the value of key or appends a new field
func (r *Record) Set(key, value string) {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Key: key, Value: value})
}

// Keys returns the field names in order
func (r Record) Keys() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Key
	}
	return out
}

// DedupKey identifies a logical publication across runs
type DedupKey struct {
	Kind          Kind
	Text          string
	Discriminator string
}

// Publication is the closed set of feed variants: News, PrivateAd, Joke
type Publication interface {
	Kind() Kind
	Body() string
	DedupKey() DedupKey
	publication()
}

// News is stamped with the clock at build time
type News struct {
	Text string `validate:"required"`
	City string `validate:"required"`
	Date string `validate:"required,feeddate"`
	Time string `validate:"required,feedtime"`
}

// PrivateAd carries an expiration date and the days left until it
type PrivateAd struct {
	Text           string `validate:"required"`
	ExpirationDate string `validate:"required,feeddate"`
	// DaysLeft may be negative for an already expired ad
	DaysLeft int
}

// Joke carries a hashtag and a fun index frozen at build time
type Joke struct {
	Text     string `validate:"required"`
	Hashtag  string `validate:"required"`
	FunIndex int    `validate:"min=1,max=10"`
}

func (News) Kind() Kind      { return KindNews }
func (PrivateAd) Kind() Kind { return KindPrivateAd }
func (Joke) Kind() Kind      { return KindJoke }

func (n News) Body() string      { return n.Text }
func (a PrivateAd) Body() string { return a.Text }
func (j Joke) Body() string      { return j.Text }

func (n News) DedupKey() DedupKey      { return DedupKey{KindNews, n.Text, n.City} }
func (a PrivateAd) DedupKey() DedupKey { return DedupKey{KindPrivateAd, a.Text, a.ExpirationDate} }
func (j Joke) DedupKey() DedupKey      { return DedupKey{KindJoke, j.Text, j.Hashtag} }

func (News) publication()      {}
func (PrivateAd) publication() {}
func (Joke) publication()      {}

// TableCounts reports stored rows per variant
type TableCounts map[Kind]int64

// Report summarizes one ingest run
type Report struct {
	RunID    string
	Source   string
	Records  int
	Built    int
	Skipped  int
	Appended int
	Inserted int
	Deduped  int
	Words    int
	Letters  int
	Counts   TableCounts
}
