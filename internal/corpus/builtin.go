// Package corpus supplies the built-in document set ingested on first use.
// It is pure data: the pipeline treats it as ingestion input, not logic.
package corpus

// Document is a {title, content} pair supplied to ingestion.
type Document struct {
	Title   string
	Content string
}

// Builtin returns the fixed startup corpus.
func Builtin() []Document {
	return builtinDocs
}

var builtinDocs = []Document{
	{
		Title: "RAG Pipeline Best Practices",
		Content: `Retrieval-augmented generation (RAG) grounds a language model's answer in retrieved evidence instead of relying on parametric memory alone. A well-built RAG pipeline splits source documents into overlapping chunks, indexes them for both semantic and lexical retrieval, and assembles the best-matching chunks into a citation-tagged context block.

Chunking is the first lever. Chunks around a few hundred characters preserve enough context to be meaningful while staying small enough that irrelevant text does not dilute the embedding. Overlapping adjacent chunks protects against answers that straddle a boundary.

Hybrid retrieval is the second lever. Embedding similarity captures paraphrase and synonymy; BM25 keyword scoring captures exact terminology, identifiers, and rare words. Reciprocal rank fusion merges the two ranked lists without forcing their incomparable scores onto one scale.

Re-ranking is the third lever. After a broad first-stage retrieval, rescoring the shortlisted candidates against the original query sharpens precision. When no embedding provider is reachable, a pipeline should degrade to keyword-only retrieval rather than fail.

Finally, always surface provenance. Each context chunk should carry its source title and a relevance figure so the downstream model, and the reader, can judge how much weight to give it.`,
	},
	{
		Title: "Vector Embeddings and Semantic Search",
		Content: `An embedding is a fixed-length numeric vector that places a piece of text in a geometric space where semantic neighbors sit close together. Two sentences that share meaning but no vocabulary still land near each other, which is what makes embeddings complementary to keyword search.

Cosine similarity is the standard closeness measure: the dot product of two vectors divided by the product of their magnitudes. It ranges from -1 to 1 and ignores vector length, so documents of different sizes compare fairly.

At small corpus sizes a brute-force linear scan over all stored vectors is perfectly adequate and exact. Approximate structures such as HNSW graphs only pay for themselves once a corpus reaches millions of vectors.

Embedding providers are network services and they fail. A robust system treats a failed embedding call as a soft condition: the affected chunk simply participates in keyword scoring only, and the overall ingestion carries on.`,
	},
	{
		Title: "Keyword Scoring with BM25",
		Content: `BM25 is the workhorse of lexical ranking. It combines term frequency, which rewards documents that mention a query term often, with inverse document frequency, which rewards terms that are rare across the corpus and therefore discriminative.

The k1 parameter controls term-frequency saturation: beyond a point, repeating a word stops adding relevance. The b parameter controls length normalization, damping the advantage long documents would otherwise enjoy.

Unlike embedding similarity, BM25 is exact about vocabulary. Product names, function identifiers, and acronyms that an embedding model may never have seen are matched literally. This is why hybrid systems keep a lexical scorer alongside the vector index instead of replacing it.`,
	},
	{
		Title: "Query Expansion and Recall",
		Content: `Users rarely phrase a query the way a document phrases its answer. Query expansion widens recall by searching several variants of the same question: a synonym-substituted form, and a keyword form stripped of stop words.

Expansion must stay conservative. Each extra variant multiplies retrieval work and can drag in noise, so a single synonym substitution per query is usually enough. The original query always stays in the set, and the final re-ranking pass scores candidates against it, not against the variants that happened to retrieve them.

Stop-word stripping helps most with conversational queries. Removing words like "what", "the", and "how" leaves the content-bearing terms that lexical scoring actually uses.`,
	},
	{
		Title: "Large Language Models and Context Windows",
		Content: `A large language model (LLM) generates text conditioned on everything in its context window. The window is finite, which is the fundamental reason retrieval exists: a pipeline selects the few most relevant passages instead of stuffing entire documents into the prompt.

Context assembly order matters. Models attend more reliably to material near the start of the prompt, so retrieved chunks should be ordered by descending relevance, each tagged with its source so the model can cite it.

Degraded retrieval still beats no retrieval. Even keyword-only context, clearly labeled as such, reduces hallucination compared to asking the model to answer from memory.`,
	},
}
