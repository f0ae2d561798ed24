package services

// ServiceManager groups the services the HTTP layer depends on
type ServiceManager interface {
	Scoring() ScoringService
	AnswerKeys() AnswerKeyService
	Export() ExportService
}

type serviceManager struct {
	scoring    ScoringService
	answerKeys AnswerKeyService
	export     ExportService
}

func NewServiceManager(scoring ScoringService, answerKeys AnswerKeyService, export ExportService) ServiceManager {
	return &serviceManager{
		scoring:    scoring,
		answerKeys: answerKeys,
		export:     export,
	}
}

func (m *serviceManager) Scoring() ScoringService      { return m.scoring }
func (m *serviceManager) AnswerKeys() AnswerKeyService { return m.answerKeys }
func (m *serviceManager) Export() ExportService        { return m.export }
