package thread

import (
	"github.com/CrestNiraj12/echoterm/domain"
)

// Status is the detail fetch state of one post.
type Status int

const (
	Collapsed Status = iota
	Loading
	Loaded
	Errored
)

func (s Status) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// DetailLoadedMsg carries a fetched thread. Seq is the sequence number the
// fetch was issued with; only the latest issued fetch is applied.
type DetailLoadedMsg struct {
	PostID int64
	Seq    int
	Detail domain.PostDetail
}

// DetailErrorMsg reports a failed fetch.
type DetailErrorMsg struct {
	PostID int64
	Seq    int
	Err    error
}

// LikeResultMsg is sent after a like request completes.
type LikeResultMsg struct {
	PostID int64
	Ref    domain.EntityRef
	Result domain.LikeResult
	Err    error
}

// LikeCell is the displayed like state of one post or comment. It only
// changes when the server answers a like or a refresh rebuilds it.
type LikeCell struct {
	Count int
	Liked bool
}

// Row is one rendered comment in pre-order.
type Row struct {
	Comment domain.CommentNode
	Depth   int
	Like    LikeCell
	Pending bool
}
