package prompts

import (
	"strconv"
	"strings"

	"carf-backend/store"
)

// MaxPlanSteps is the step limit the course prompt asks the model to honor.
const MaxPlanSteps = 4

const noAttachment = "Nenhum documento anexo fornecido."

// Assembler builds prompts around an immutable institutional context. Its
// methods are pure: the same inputs always produce the same string.
type Assembler struct {
	context string
}

// New returns an Assembler for the given context, falling back to
// DefaultInstitutionalContext when ctx is blank.
func New(ctx string) *Assembler {
	if strings.TrimSpace(ctx) == "" {
		ctx = DefaultInstitutionalContext
	}
	return &Assembler{context: strings.TrimSpace(ctx)}
}

func (a *Assembler) Context() string { return a.context }

// GapLine renders one competency gap bullet.
func GapLine(g store.Gap) string {
	return "- " + g.Competencia + " (Lacuna: " + strconv.FormatFloat(g.LacunaPercentual, 'f', -1, 64) + "%)"
}

// CatalogLine renders one catalog bullet.
func CatalogLine(course string) string {
	return "- " + course
}

// CourseSuggestion asks for an at-most-four-step course plan drawn from catalog.
func (a *Assembler) CourseSuggestion(w store.Worker, catalog []string) string {
	var b strings.Builder
	b.WriteString(a.context)
	b.WriteString("\n\n")
	b.WriteString("Você é o Agente de Desenvolvimento de Competências (CSUA) do CARF.\n")
	b.WriteString("Sua missão é criar uma \"Trilha de Cursos Otimizada\" para o servidor. A solução deve ser autônoma (self-service) para aliviar a carga do RH.\n\n")

	b.WriteString("## Perfil do Servidor\n")
	b.WriteString("Nome: " + w.Nome + "\n")
	b.WriteString("Função: " + w.Funcao + "\n\n")

	b.WriteString("## Lacunas Críticas Identificadas (Gaps)\n")
	for _, g := range w.LacunasIdentificadas {
		b.WriteString(GapLine(g))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString("## Catálogo de Cursos Disponíveis\n")
	for _, c := range catalog {
		b.WriteString(CatalogLine(c))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString("## Instruções de Saída:\n")
	b.WriteString("1. Crie no máximo " + strconv.Itoa(MaxPlanSteps) + " passos, priorizando os Gaps mais críticos e estratégicos.\n")
	b.WriteString("2. Garanta que a sugestão seja o curso EXATO do Catálogo e relacione o curso diretamente com a produtividade e a função no CARF.\n")
	b.WriteString("3. A saída deve ser um JSON VÁLIDO.\n\n")

	b.WriteString("Exemplo do formato JSON que você DEVE retornar:\n")
	b.WriteString("{\n")
	b.WriteString("  \"servidor_id\": " + strconv.Itoa(w.ID) + ",\n")
	b.WriteString("  \"trilha_sugerida\": [\n")
	b.WriteString("    {\n")
	b.WriteString("      \"passo\": 1,\n")
	b.WriteString("      \"curso_sugerido\": \"Nome do Curso EXATO\",\n")
	b.WriteString("      \"justificativa\": \"Esta é a justificativa de alto impacto para o CARF, focada em produtividade e redução de lacunas.\"\n")
	b.WriteString("    }\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n")
	return b.String()
}

// Chat wraps the question with the answering rules and, when attachment has
// content, the attachment text.
func (a *Assembler) Chat(question, attachment string) string {
	var b strings.Builder
	b.WriteString(a.context)
	b.WriteString("\n\n")
	b.WriteString("Você é o CARF.AI, um Agente de Suporte Institucional e Produtividade. Responda à pergunta do servidor.\n\n")

	b.WriteString("## Instruções de Resposta:\n")
	b.WriteString("1. Responda de forma clara e concisa.\n")
	b.WriteString("2. Se houver anexo, utilize-o para fornecer a resposta de produtividade direta. Exemplo: Se o anexo for uma planilha de processos, sugira a melhor forma de priorizar os 5 processos mais antigos.\n")
	b.WriteString("3. Mantenha o tom formal e técnico.\n\n")

	if strings.TrimSpace(attachment) != "" {
		b.WriteString("--- Conteúdo do Documento Anexo (Produtividade Direta):\n")
		b.WriteString(attachment)
		b.WriteString("\n---\n\n")
	} else {
		b.WriteString(noAttachment)
		b.WriteString("\n\n")
	}

	b.WriteString("## Pergunta do Servidor:\n")
	b.WriteString(question)
	b.WriteByte('\n')
	return b.String()
}
