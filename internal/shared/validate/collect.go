package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Collector runs ozzo rules field by field and keeps every failure message
// in the order the checks were declared.
type Collector struct {
	messages []string
}

// Check validates value against rules and records the first failing rule's message.
func (c *Collector) Check(value interface{}, rules ...validation.Rule) bool {
	if err := validation.Validate(value, rules...); err != nil {
		c.messages = append(c.messages, err.Error())
		return false
	}
	return true
}

// Add records a message produced outside of an ozzo rule.
func (c *Collector) Add(message string) {
	c.messages = append(c.messages, message)
}

func (c *Collector) Messages() []string {
	return c.messages
}

func (c *Collector) HasErrors() bool {
	return len(c.messages) > 0
}
