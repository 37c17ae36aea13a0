package ai

// Task identifies a generation category, which selects the prompt template
// and the JSON shape expected from the model.
type Task string

// Supported generation tasks.
const (
	// TaskNews generates a company news article.
	TaskNews Task = "news"
	// TaskDanger generates a dangerous-situation report.
	TaskDanger Task = "danger"
	// TaskRex generates a worksite lessons-learned report.
	TaskRex Task = "rex"
	// TaskPolitique generates or extracts QSE policy document content.
	TaskPolitique Task = "politique"
	// TaskFile analyzes an arbitrary uploaded document.
	TaskFile Task = "file"
)

// ValidTask reports whether a task is known.
func ValidTask(task Task) bool {
	switch task {
	case TaskNews, TaskDanger, TaskRex, TaskPolitique, TaskFile:
		return true
	}
	return false
}

// RequiresAttachment reports whether a task only makes sense with a file.
func (t Task) RequiresAttachment() bool {
	return t == TaskFile
}

const (
	generateBase = "Tu es un assistant IA pour l'intranet d'INNOVTEC Réseaux, une entreprise de construction de réseaux. Réponds toujours en français."

	analyzeBase = "Tu es un assistant IA pour l'intranet d'INNOVTEC Réseaux. Tu analyses des documents et images pour en extraire du contenu structuré. Réponds toujours en français."

	jsonOnlySuffix = " Retourne UNIQUEMENT du JSON valide, sans markdown, sans backticks, sans texte avant ou après."
)

// taskFragments holds the per-task instruction including the expected JSON
// field names, which are the output contract for the UI.
var taskFragments = map[Task]string{
	TaskNews:      " Tu génères des actualités d'entreprise. Retourne un JSON avec les champs: title, excerpt (2 phrases max), content (paragraphes détaillés), category (une valeur parmi: entreprise, securite, formation, chantier, social, rh), priority (normal, important, ou urgent).",
	TaskDanger:    " Tu génères des rapports de situations dangereuses sur les chantiers. Retourne un JSON avec les champs: title, description (détaillée et professionnelle), location (lieu suggéré si mentionné, sinon vide), severity (1 à 5, 5 étant le plus grave).",
	TaskRex:       " Tu génères des retours d'expérience (REX) de chantiers. Retourne un JSON avec les champs: title, description (contexte et déroulement), lessons_learned (leçons tirées, points d'amélioration), chantier (nom du chantier si mentionné).",
	TaskPolitique: " Tu génères du contenu structuré pour la politique QSE (Qualité, Sécurité, Environnement). Retourne un JSON avec les champs: title, sections (tableau d'objets {title, content} représentant les sections du document).",
	TaskFile:      " Analyse ce document et retourne un JSON structuré avec les informations pertinentes extraites.",
}

// analyzePolitiqueFragment replaces the politique fragment when a document is
// attached: the model extracts the policy instead of drafting one.
const analyzePolitiqueFragment = " Analyse ce document de politique QSE et retourne un JSON avec: title (titre du document), sections (tableau d'objets {title, content} représentant chaque section/chapitre du document). Extrais toutes les informations importantes: engagements, objectifs, mesures, responsabilités."

// defaultFilePrompt is used when a file task comes without a user prompt.
const defaultFilePrompt = "Analyse ce document et extrais les informations principales."

// buildSystemPrompt assembles the system instruction for a task.
func buildSystemPrompt(task Task, hasAttachment bool) string {
	base := generateBase
	fragment := taskFragments[task]
	if hasAttachment {
		base = analyzeBase
		if task == TaskPolitique {
			fragment = analyzePolitiqueFragment
		} else {
			fragment = taskFragments[TaskFile]
		}
	}
	return base + fragment + jsonOnlySuffix
}
