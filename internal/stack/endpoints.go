package stack

import "fmt"

// Endpoints are the service URLs of a provisioned stack.
type Endpoints struct {
	WebUI  string
	Ollama string
}

// Endpoints returns the URLs the stack serves on once provisioned.
func (c *Config) Endpoints() Endpoints {
	return Endpoints{
		WebUI:  fmt.Sprintf("http://localhost:%d", c.WebUI.Port),
		Ollama: c.Ollama.Endpoint,
	}
}
