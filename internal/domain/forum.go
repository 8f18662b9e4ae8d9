package domain

import "time"

type Post struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"eventId"`
	UserID    uint      `json:"userId"`
	ParentID  *uint     `json:"parentId"`
	Content   string    `json:"content"`
	Author    *UserRef  `json:"author,omitempty"`
	Replies   []Post    `json:"replies,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Thread attaches replies under their parents, at any depth. Replies whose
// parent is not reachable from roots are dropped. Sibling order follows the
// order of replies.
func Thread(roots []Post, replies []Post) []Post {
	children := make(map[uint][]Post, len(replies))
	for _, r := range replies {
		if r.ParentID == nil {
			continue
		}
		children[*r.ParentID] = append(children[*r.ParentID], r)
	}

	var attach func(p Post, seen map[uint]bool) Post
	attach = func(p Post, seen map[uint]bool) Post {
		if seen[p.ID] {
			return p
		}
		seen[p.ID] = true

		kids := children[p.ID]
		p.Replies = make([]Post, 0, len(kids))
		for _, c := range kids {
			p.Replies = append(p.Replies, attach(c, seen))
		}

		return p
	}

	seen := make(map[uint]bool)
	out := make([]Post, 0, len(roots))
	for _, root := range roots {
		out = append(out, attach(root, seen))
	}

	return out
}
