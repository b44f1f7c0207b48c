package ports

import (
	"context"

	"github.com/profitzen/analytics-api/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, OpenAI, Ollama, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), el dominio/aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// GenerateInventoryNarrative redacta un resumen ejecutivo en español a
	// partir de los riesgos y el plan de compras calculados. El contexto debe
	// llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateInventoryNarrative(
		ctx context.Context,
		risks []dto.RiskAssessmentDTO,
		purchases []dto.SuggestedPurchaseDTO,
	) (string, error)
}
