package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/services"
)

const featuredCount = 3

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{services.SortFeatured, "Featured"},
	{services.SortPriceAsc, "Price: low to high"},
	{services.SortPriceDesc, "Price: high to low"},
	{services.SortRating, "Top rated"},
	{services.SortNewest, "Newest"},
}

var ratingOptions = []string{"4", "3", "2"}

// ProductHandler serves the home page, the listing and product detail pages.
type ProductHandler struct {
	view    view
	catalog *services.CatalogService
}

func NewProductHandler(v view, catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{view: v, catalog: catalog}
}

type homeView struct {
	Page
	Categories []string
	Featured   []dataset.CatalogItem
	ReturnURL  string
}

type productsView struct {
	Page
	Filter      services.ProductQuery
	Categories  []string
	Ratings     []string
	SortOptions []sortOption
	Products    []dataset.CatalogItem
	Total       int
	CurrentPage int
	TotalPages  int
	PrevURL     string
	NextURL     string
	ReturnURL   string
}

type productView struct {
	Page
	Item      dataset.CatalogItem
	ReturnURL string
}

func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "home", homeView{
		Page:       h.view.page(r, "Home"),
		Categories: h.catalog.Categories(),
		Featured:   h.catalog.Featured(featuredCount),
		ReturnURL:  r.URL.RequestURI(),
	})
}

// List serves /products. Filters and paging are carried in the query string
// so every result page has a stable URL.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ProductQuery{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Min:      q.Get("min"),
		Max:      q.Get("max"),
		Rating:   q.Get("rating"),
		Sort:     q.Get("sort"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))

	result := h.catalog.Search(filter)
	data := productsView{
		Page:        h.view.page(r, "Products"),
		Filter:      filter,
		Categories:  h.catalog.Categories(),
		Ratings:     ratingOptions,
		SortOptions: sortOptions,
		Products:    result.Items,
		Total:       result.Total,
		TotalPages:  result.TotalPages,
		ReturnURL:   r.URL.RequestURI(),
	}
	data.setPage(result.Page, q)

	h.view.Render(w, http.StatusOK, "products", data)
}

func (v *productsView) setPage(current int, q url.Values) {
	v.CurrentPage = current
	if current > 1 {
		v.PrevURL = pageURL(q, current-1)
	}
	if current < v.TotalPages {
		v.NextURL = pageURL(q, current+1)
	}
}

func pageURL(q url.Values, page int) string {
	next := url.Values{}
	for k, vs := range q {
		next[k] = append([]string(nil), vs...)
	}
	next.Set("page", strconv.Itoa(page))
	return "/products?" + next.Encode()
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	item, ok := h.catalog.Find(chi.URLParam(r, "id"))
	if !ok {
		h.view.notFound(w, r, "We could not find that product.")
		return
	}
	h.view.Render(w, http.StatusOK, "product", productView{
		Page:      h.view.page(r, item.Name),
		Item:      item,
		ReturnURL: r.URL.RequestURI(),
	})
}
