// Package server provides an HTTP preview server for a directory of mdx
// documents.
//
// Every request renders the document from disk, so edits show up on the
// next reload. Routes:
//
//	GET /            index of .md files under the documents directory
//	GET /{path}.md   the rendered document wrapped in a full HTML page
//	GET /healthz     liveness probe
//	GET /metrics     Prometheus metrics
//
// The page title comes from the front-matter "title" key, falling back to
// the file name. Compile and parse failures answer 422 with the error
// message; component failures answer 500.
//
//	srv := server.New(&server.ServerConfig{
//	    Address: "localhost:4000",
//	    Dir:     "docs",
//	    Handler: registry,
//	})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
