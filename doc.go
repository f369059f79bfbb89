// Package scriptura indexes Bible translations for semantic search.
//
// A Database ties together the pieces a run needs:
//
//	cfg, _ := config.Load("")
//	db, err := scriptura.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	pipeline, _ := db.NewIngestionPipeline(os.Stderr)
//	report, err := pipeline.Run(ctx, "KJV")
//
// Ingestion is resumable per book: a book is recorded in the version's
// checkpoint only after all of its verses were indexed, and later runs skip
// recorded books.
package scriptura
