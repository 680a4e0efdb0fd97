package domain

// Algorithm identifies which backend recommendation model produced a result
// set. Tags are passed to the backend verbatim; it rejects unknown ones.
type Algorithm string

const (
	AlgorithmKNN   Algorithm = "knn"
	AlgorithmSVDpp Algorithm = "svdpp"
	AlgorithmNCF   Algorithm = "ncf"
	AlgorithmCBF   Algorithm = "cbf"
)

// Algorithms lists every model in the order the catalog page renders them.
var Algorithms = []Algorithm{AlgorithmKNN, AlgorithmSVDpp, AlgorithmNCF, AlgorithmCBF}

type AlgorithmInfo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
}

var AlgorithmCatalog = map[Algorithm]AlgorithmInfo{
	AlgorithmKNN: {
		Name:        "KNN",
		FullName:    "K-Nearest Neighbors",
		Description: "Item-based collaborative filtering using cosine similarity",
	},
	AlgorithmSVDpp: {
		Name:        "SVD++",
		FullName:    "SVD++ (Latent Factor Model)",
		Description: "Matrix factorization with implicit feedback",
	},
	AlgorithmNCF: {
		Name:        "NCF",
		FullName:    "Neural Collaborative Filtering",
		Description: "Deep learning-based recommendation model",
	},
	AlgorithmCBF: {
		Name:        "CBF",
		FullName:    "Content-Based Filtering",
		Description: "Recommends based on item features and user preferences",
	},
}
