package handlers

import (
	"net/http"

	"github.com/apex/log"

	"github.com/BorisDmv/portfolio-api/internal/importer"
	"github.com/BorisDmv/portfolio-api/internal/models"
)

// ImportResponse reports how many entries of each kind were applied.
type ImportResponse struct {
	Success        bool `json:"success"`
	Projects       int  `json:"projects"`
	Blogs          int  `json:"blogs"`
	Certifications int  `json:"certifications"`
	Achievements   int  `json:"achievements"`
	Volunteering   int  `json:"volunteering"`
}

type ImportHandler struct {
	importer *importer.Importer
	maxBody  int64
	debug    bool
	logs     *log.Entry
}

func NewImportHandler(im *importer.Importer, maxBody int64, debug bool) *ImportHandler {
	return &ImportHandler{
		importer: im,
		maxBody:  maxBody,
		debug:    debug,
		logs: log.WithFields(log.Fields{
			"package": "portfolio", "module": "handlers", "component": "import",
		}),
	}
}

func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST, OPTIONS")
		return
	}

	body, err := readBody(w, r, h.maxBody)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	doc, err := importer.ParseDocument(body)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	report, err := h.importer.Run(r.Context(), doc)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}

	respondJSON(w, http.StatusOK, ImportResponse{
		Success:        true,
		Projects:       report.Count(models.KindProjects),
		Blogs:          report.Count(models.KindBlogs),
		Certifications: report.Count(models.KindCertifications),
		Achievements:   report.Count(models.KindAchievements),
		Volunteering:   report.Count(models.KindVolunteering),
	})
}
