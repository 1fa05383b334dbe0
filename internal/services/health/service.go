package health

// Service encapsulates health-related checks.
type Service struct {
	providers []string
}

// NewService constructs a new health service. providers is the LLM fallback
// chain in priority order, as configured at startup.
func NewService(providers []string) *Service {
	return &Service{providers: providers}
}

// Status returns the health payload, including which providers are live.
func (s *Service) Status() map[string]any {
	providers := s.providers
	if providers == nil {
		providers = []string{}
	}
	return map[string]any{
		"ok":        true,
		"providers": providers,
	}
}
