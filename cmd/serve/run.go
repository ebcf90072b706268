package serve

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/bgraf/figures/config"
	"github.com/bgraf/figures/document"
	"github.com/bgraf/figures/render"
	"github.com/gin-gonic/gin"
	"github.com/goodsign/monday"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

//go:embed templates/*.html
var templateFS embed.FS

const resourceRoute = "/resource"

func RunServeCmd(cmd *cobra.Command, args []string) error {
	if !config.HasJournalDirectory() {
		return fmt.Errorf("no root directory configured")
	}

	opts, err := config.StoreOptions()
	if err != nil {
		return err
	}

	store, err := document.NewStore(cmd.Context(), config.JournalDirectory(), opts)
	if err != nil {
		return err
	}

	live, err := cmd.Flags().GetBool("live")
	if err != nil {
		return err
	}

	api := newServeAPI(store, config.ServeLocale())
	api.live = live

	r, err := newRouter(api)
	if err != nil {
		return err
	}

	address := config.ServeAddress()
	log.Printf("serving %d documents on %s", len(store.Documents()), address)

	return r.Run(address)
}

func newRouter(api *serveAPI) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl, err := template.New("").
		Funcs(render.MakeTemplateFuncmap(api.locale)).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r.SetHTMLTemplate(tmpl)

	r.GET("/", api.ServeIndex)
	r.GET("/entry/:GUID", api.ServeEntry)
	r.GET("/figures/:GUID", api.ServeFigures)
	r.GET(resourceRoute+"/:name", api.ServeResource)
	r.POST("/render", api.ServeRender)

	return r, nil
}

type serveAPI struct {
	store     *document.Store
	resources *resourceMap
	locale    monday.Locale
	live      bool
}

func newServeAPI(store *document.Store, locale monday.Locale) *serveAPI {
	store.OrderDocumentsByDate()

	api := &serveAPI{
		store:     store,
		resources: newResourceMap(),
		locale:    locale,
	}

	for _, doc := range store.Documents() {
		api.prepareDocument(doc)
	}

	return api
}

// prepareDocument points relative image and link targets of doc to the
// resource route.
func (api *serveAPI) prepareDocument(doc *document.Document) {
	if doc.Path == "" {
		return
	}

	render.RecodePaths(doc.HTML, func(original string) (string, bool) {
		srcPath := filepath.Join(filepath.Dir(doc.Path), filepath.FromSlash(original))

		id, err := api.resources.IDFromPath(srcPath)
		if err != nil {
			log.Printf("resource '%s': %s", srcPath, err)
			return "", false
		}

		return resourceRoute + "/" + id.String(), true
	})
}

func (api *serveAPI) documentByGUID(c *gin.Context) *document.Document {
	guid, err := uuid.Parse(c.Param("GUID"))
	if err != nil {
		return nil
	}

	if api.live {
		doc, err := api.store.ReloadByGUID(c.Request.Context(), guid)
		if err != nil {
			log.Println(err)
			return nil
		}

		api.prepareDocument(doc)

		return doc
	}

	return api.store.DocumentByGUID(guid)
}

func (api *serveAPI) ServeEntry(c *gin.Context) {
	doc := api.documentByGUID(c)
	if doc == nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	// Extract body fragment
	fragment, err := doc.Fragment()
	if err != nil {
		c.String(http.StatusInternalServerError, "error")
		return
	}

	c.HTML(http.StatusOK, "entry.html", gin.H{
		"Document": doc,
		"Fragment": template.HTML(fragment),
	})
}

func (api *serveAPI) ServeFigures(c *gin.Context) {
	doc := api.documentByGUID(c)
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	figures := doc.Figures
	if figures == nil {
		figures = []render.Figure{}
	}

	c.JSON(http.StatusOK, gin.H{
		"guid":    doc.GUID,
		"title":   doc.Title,
		"figures": figures,
	})
}

func (api *serveAPI) ServeResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("name"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	resourcePath, ok := api.resources.PathFromID(id)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.File(resourcePath)
}

// ServeRender renders the markdown request body with the configured options.
func (api *serveAPI) ServeRender(c *gin.Context) {
	source, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := api.store.Render(c.Request.Context(), "", source)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	fragment, err := doc.Fragment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	figures := doc.Figures
	if figures == nil {
		figures = []render.Figure{}
	}

	c.JSON(http.StatusOK, gin.H{
		"html":    fragment,
		"figures": figures,
	})
}
