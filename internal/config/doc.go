// Package config provides configuration parsing for mdx.
//
// The configuration is stored in mdx.json in the documents directory or
// any of its parents. This package handles loading, saving and
// validating configuration. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "markdown": {
//	    "gfm": true,
//	    "typographer": false,
//	    "hardWraps": false,
//	    "xhtml": false,
//	    "autoHeadingID": true
//	  },
//	  "render": {
//	    "concurrency": 4,
//	    "handlerTimeout": "2s",
//	    "strict": false
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "dir": "docs"
//	  },
//	  "components": {
//	    "Note": "<aside class=\"note\">{{.Children}}</aside>"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Address())
package config
