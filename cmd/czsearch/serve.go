/*
 * Copyright (c) 2025 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sjzar/czsearch/czdb"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <db> <key>",
		Short: "Serve GET /query?ip=... over HTTP against one bootstrapped Searcher",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args[0], args[1], addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	return cmd
}

func runServe(dbPath, key, listenAddr string) error {
	mode, err := resolveMode()
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(dbPath)
	if err != nil {
		return err
	}

	s, err := czdb.Open(buf, key, mode)
	if err != nil {
		return err
	}
	defer s.Close()

	if logrus.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/query", queryHandler(s))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	logrus.WithField("addr", listenAddr).Info("czsearch: listening")
	return router.Run(listenAddr)
}

func queryHandler(s *czdb.Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.Query("ip")
		if ip == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing ip parameter"})
			return
		}

		region, err := s.Search(ip)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"ip": ip, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ip": ip, "region": region})
	}
}
