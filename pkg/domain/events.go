package domain

// Update is one inbound event from the chat transport.
// SessionID is an opaque identifier of the chat/user. Text and Document are
// both optional; an update carrying neither is a no-op for the dispatcher.
type Update struct {
	SessionID string
	Text      string
	Document  *DocumentRef
}

// DocumentRef points at an attached file. The content is fetched lazily via
// the transport's FileFetcher.
type DocumentRef struct {
	ID       string
	FileName string
}

// Empty reports whether the update carries no message body at all.
func (u Update) Empty() bool {
	return u.Text == "" && u.Document == nil
}

// Reply is one outbound message the machine asks the transport to deliver.
// Exactly one of the three shapes is populated: plain text (optionally with a
// reply keyboard), a named document, or a named photo.
type Reply struct {
	Text     string
	Keyboard [][]string
	Document *Attachment
	Photo    *Attachment
}

// Attachment is a named binary payload with a caption.
type Attachment struct {
	Name    string
	Content []byte
	Caption string
}

// TextReply builds a plain text reply.
func TextReply(text string, keyboard [][]string) Reply {
	return Reply{Text: text, Keyboard: keyboard}
}
