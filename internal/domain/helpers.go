package domain

import (
	"fmt"
	"time"
)

// for debug
func (r *Reply) String() string {
	modified := "-"
	if r.ModifiedAt.Valid {
		modified = r.ModifiedAt.Time.Format(time.StampMilli)
	}
	return fmt.Sprintf("[id:%d, thread:%d, author:%d, body:%s, created:%s, modified:%s]",
		r.Id, r.ThreadId, r.Author.Id, r.Body, r.CreatedAt.Format(time.StampMilli), modified)
}

func (t *Thread) String() string {
	s := fmt.Sprintf("[id:%d, title:%s, category:%d, replies:%d, last_reply:%v, sticky:%t, closed:%t, items:[",
		t.Id, t.Title, t.Category, t.ReplyCount, t.LastReplyAt, t.Sticky, t.Closed)
	for i, r := range t.Replies {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v", r)
	}
	return s + "]]"
}
