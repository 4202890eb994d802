package serialize

import "github.com/chirino/forumcore/internal/model"

// WriteCategory emits a category's own fields plus its child and tag
// references; callers walk Children()/Tags() themselves to build a
// full tree, mirroring EntitySerialization's recursive category writer.
func WriteCategory(s Sink, c *model.DiscussionCategory) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(c.ID.String())
	s.PropertyName("name")
	s.WriteString(c.Name())
	if desc := c.Description(); desc != "" {
		s.PropertyName("description")
		s.WriteString(desc)
	}
	s.PropertyName("displayOrder")
	s.WriteInt64(int64(c.DisplayOrder()))
	if p := c.Parent(); p != nil {
		s.PropertyName("parentId")
		s.WriteString(p.ID.String())
	}
	s.PropertyName("totalThreadCount")
	s.WriteInt64(int64(c.TotalThreadCount()))
	s.PropertyName("totalMessageCount")
	s.WriteInt64(int64(c.TotalMessageCount()))

	s.PropertyName("tags")
	s.StartArray()
	for id := range c.Tags() {
		s.WriteString(id.String())
	}
	s.EndArray()

	s.PropertyName("children")
	s.StartArray()
	for id := range c.Children() {
		s.WriteString(id.String())
	}
	s.EndArray()

	s.EndObject()
}
