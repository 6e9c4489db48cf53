package services

type AIHealth struct {
	OpenAIKeyPresent        bool   `json:"openai_key_present"`
	OCRProvider             string `json:"ocr_provider"`
	IngestionAgentAvailable bool   `json:"ingestion_agent_available"`
	ConsensusAgentAvailable bool   `json:"consensus_agent_available"`
	TutorAgentAvailable     bool   `json:"tutor_agent_available"`
	QuizStore               string `json:"quiz_store"`
}

type AIHealthService interface {
	Health() AIHealth
}

type aiHealthService struct {
	openAIKeyPresent bool
	ingestion        IngestionService
	consensus        ConsensusService
	tutor            TutorService
	store            QuizStore
}

// NewAIHealthService reports configuration only; it never calls a model.
func NewAIHealthService(openAIKeyPresent bool, ingestion IngestionService, consensus ConsensusService, tutor TutorService, store QuizStore) AIHealthService {
	return &aiHealthService{
		openAIKeyPresent: openAIKeyPresent,
		ingestion:        ingestion,
		consensus:        consensus,
		tutor:            tutor,
		store:            store,
	}
}

func (s *aiHealthService) Health() AIHealth {
	h := AIHealth{OpenAIKeyPresent: s.openAIKeyPresent, OCRProvider: "none", QuizStore: "none"}
	if s.ingestion != nil {
		h.OCRProvider = s.ingestion.Provider()
		h.IngestionAgentAvailable = s.ingestion.Available()
	}
	if s.consensus != nil {
		h.ConsensusAgentAvailable = s.consensus.Available()
	}
	if s.tutor != nil {
		h.TutorAgentAvailable = s.tutor.Available()
	}
	if s.store != nil {
		h.QuizStore = s.store.Kind()
	}
	return h
}
