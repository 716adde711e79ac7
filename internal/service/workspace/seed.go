package workspace

import (
	"time"

	"github.com/google/uuid"

	models "viber/internal/domain/models/workspace"
)

const seedAppTSX = `import React, { useState } from 'react';

function App() {
  const [count, setCount] = useState(0);
  const [bgColor, setBgColor] = useState('from-orange-400 to-red-500');

  const colors = [
    'from-orange-400 to-red-500',
    'from-purple-400 to-pink-500',
    'from-blue-400 to-cyan-500',
    'from-green-400 to-emerald-500',
    'from-yellow-400 to-orange-500'
  ];

  const changeBg = () => {
    const randomColor = colors[Math.floor(Math.random() * colors.length)];
    setBgColor(randomColor);
  };

  return (
    <div className={'min-h-screen bg-gradient-to-br ' + bgColor + ' flex items-center justify-center p-8'}>
      <div className="bg-white/95 backdrop-blur-sm p-8 rounded-2xl shadow-xl border border-gray-200 max-w-md w-full text-center">
        <div className="mb-8">
          <h1 className="text-4xl font-light text-gray-900 mb-3">
            Welcome to <span className="text-orange-500 font-medium">Viber</span>
          </h1>
          <p className="text-gray-600 font-light">Your sleek AI-powered app builder</p>
        </div>

        <div className="space-y-6">
          <div className="bg-gray-50 p-6 rounded-xl border border-gray-100">
            <p className="text-orange-500 text-sm mb-3 font-medium">Counter Example</p>
            <div className="text-4xl font-light text-gray-900 mb-6">{count}</div>
            <div className="flex gap-3 justify-center">
              <button
                onClick={() => setCount(count - 1)}
                className="px-6 py-3 bg-gray-200 hover:bg-gray-300 text-gray-700 rounded-xl font-medium"
              >
                -
              </button>
              <button
                onClick={() => setCount(0)}
                className="px-6 py-3 bg-gray-200 hover:bg-gray-300 text-gray-700 rounded-xl font-medium"
              >
                Reset
              </button>
              <button
                onClick={() => setCount(count + 1)}
                className="px-6 py-3 bg-gray-200 hover:bg-gray-300 text-gray-700 rounded-xl font-medium"
              >
                +
              </button>
            </div>
          </div>

          <button
            onClick={changeBg}
            className="w-full px-6 py-4 bg-orange-500 hover:bg-orange-600 text-white font-medium rounded-xl shadow-lg"
          >
            Change Background
          </button>
        </div>
      </div>
    </div>
  );
}

export default App;`

const seedIndexCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
  background: #f8fafc;
  font-weight: 300;
}

* {
  box-sizing: border-box;
}`

const seedPackageJSON = `{
  "name": "viber-sample-app",
  "version": "1.0.0",
  "dependencies": {
    "react": "^18.3.1",
    "react-dom": "^18.3.1",
    "typescript": "^5.5.3"
  }
}`

// SeedProject builds the sample React project every session starts from, so
// the editor and preview are usable before the first AI turn.
func SeedProject() *models.Project {
	appFile := &models.FileNode{
		ID:       uuid.NewString(),
		Name:     "App.tsx",
		Path:     "/src/App.tsx",
		Kind:     models.KindFile,
		Content:  seedAppTSX,
		Language: "typescript",
	}
	cssFile := &models.FileNode{
		ID:       uuid.NewString(),
		Name:     "index.css",
		Path:     "/src/index.css",
		Kind:     models.KindFile,
		Content:  seedIndexCSS,
		Language: "css",
	}
	srcFolder := &models.FileNode{
		ID:       uuid.NewString(),
		Name:     "src",
		Path:     "/src",
		Kind:     models.KindFolder,
		Children: []*models.FileNode{appFile, cssFile},
	}
	pkgFile := &models.FileNode{
		ID:       uuid.NewString(),
		Name:     "package.json",
		Path:     "/package.json",
		Kind:     models.KindFile,
		Content:  seedPackageJSON,
		Language: "json",
	}

	return &models.Project{
		ID:          uuid.NewString(),
		Name:        "My React App",
		Description: "A sample React application built with Viber",
		Type:        "react",
		Files:       []*models.FileNode{srcFolder, pkgFile},
		Dependencies: map[string]string{
			"react":      "^18.3.1",
			"react-dom":  "^18.3.1",
			"typescript": "^5.5.3",
		},
		LastModified: time.Now(),
	}
}
