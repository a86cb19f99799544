package translator

import (
	"fmt"
	"strings"

	"github.com/vidstat/statbot/pkg/schema"
)

// Message roles understood by every completion backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of the instruction payload.
type Message struct {
	Role string
	Text string
}

// BuildMessages produces the ordered two-message instruction payload: a system
// message generated from the schema descriptor and rule set, then the user's
// question verbatim. Pure function of its inputs.
func BuildMessages(d *schema.Descriptor, userQuery string) []Message {
	return []Message{
		{Role: RoleSystem, Text: buildSystemMessage(d)},
		{Role: RoleUser, Text: userQuery},
	}
}

func buildSystemMessage(d *schema.Descriptor) string {
	var b strings.Builder

	b.WriteString("You are an assistant for a video statistics database. ")
	b.WriteString("Translate the user's question (usually in Russian) into a single PostgreSQL query.\n\n")
	b.WriteString(d.Render())
	fmt.Fprintf(&b, "\nOnly the tables %s exist; never reference any other table.\n\n",
		strings.Join(d.TableNames(), " and "))
	b.WriteString(renderRules(DefaultRules()))

	return b.String()
}
