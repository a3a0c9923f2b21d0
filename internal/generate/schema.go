package generate

import "github.com/mithrel/viralscript/internal/llm"

func str(desc string) *llm.Schema { return &llm.Schema{Type: llm.TypeString, Description: desc} }

func object(order []string, props map[string]*llm.Schema) *llm.Schema {
	return &llm.Schema{Type: llm.TypeObject, Properties: props, Required: order, PropertyOrdering: order}
}

// ScriptsSchema is an array of {id, title, content, hashtags}.
func ScriptsSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeArray,
		Items: object([]string{"id", "title", "content", "hashtags"}, map[string]*llm.Schema{
			"id":       str(""),
			"title":    str(""),
			"content":  str(""),
			"hashtags": {Type: llm.TypeArray, Items: str("")},
		}),
	}
}

// BundleSchema is the four-artifact social media bundle.
func BundleSchema() *llm.Schema {
	return object([]string{"reels", "feed", "carousel", "threads"}, map[string]*llm.Schema{
		"reels": str("Full markdown for Voice-over script"),
		"feed": object([]string{"title", "visual", "caption"}, map[string]*llm.Schema{
			"title":   str("A powerful, catchy hook title"),
			"visual":  str(""),
			"caption": str(""),
		}),
		"carousel": object([]string{"slides"}, map[string]*llm.Schema{
			"slides": {
				Type: llm.TypeArray,
				Items: object([]string{"title", "content"}, map[string]*llm.Schema{
					"title":   str(""),
					"content": str(""),
				}),
			},
		}),
		"threads": {Type: llm.TypeArray, Items: str("")},
	})
}
