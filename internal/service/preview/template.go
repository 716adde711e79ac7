package preview

// defaultCSS is used when the project carries no /src/index.css.
const defaultCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
  background: #f8fafc;
  font-weight: 300;
}
* { box-sizing: border-box; }`

// documentTemplate is the fixed sandbox document. It provides the UI runtime
// (React UMD + Babel standalone + Tailwind from CDNs), an ErrorBoundary that
// catches render-time throws, a compile-time catch that injects an error
// panel instead of leaving a blank page, and the mount call. The component
// source is spliced in at componentPlaceholder; project CSS at
// stylesPlaceholder.
const (
	stylesPlaceholder    = "/*__VIBER_STYLES__*/"
	componentPlaceholder = "//__VIBER_COMPONENT__"
	messagePlaceholder   = "__VIBER_MESSAGE__"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Live Preview</title>
  <script crossorigin src="https://unpkg.com/react@18/umd/react.development.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.development.js"></script>
  <script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
  <script src="https://cdn.tailwindcss.com"></script>
  <style>
    /*__VIBER_STYLES__*/
    .preview-error {
      padding: 2rem;
      background: #fee2e2;
      border: 1px solid #fecaca;
      border-radius: 0.75rem;
      margin: 1rem;
      color: #991b1b;
      font-family: monospace;
      white-space: pre-wrap;
    }
  </style>
</head>
<body>
  <div id="root"></div>

  <script type="text/babel">
    const { useState, useEffect, useRef, useCallback, useMemo } = React;

    class ErrorBoundary extends React.Component {
      constructor(props) {
        super(props);
        this.state = { hasError: false, error: null, errorInfo: null };
      }

      static getDerivedStateFromError(error) {
        return { hasError: true, error };
      }

      componentDidCatch(error, errorInfo) {
        console.error('Preview Error:', error, errorInfo);
        this.setState({ errorInfo });
      }

      render() {
        if (this.state.hasError) {
          return (
            <div className="preview-error">
              <h2>Component Error</h2>
              <p><strong>Error:</strong> {this.state.error?.toString()}</p>
              {this.state.errorInfo && (
                <details style={{marginTop: '1rem'}}>
                  <summary>Error Details</summary>
                  <pre>{this.state.errorInfo.componentStack}</pre>
                </details>
              )}
            </div>
          );
        }

        return this.props.children;
      }
    }

    try {
      //__VIBER_COMPONENT__

      const root = ReactDOM.createRoot(document.getElementById('root'));
      root.render(
        React.createElement(ErrorBoundary, null,
          React.createElement(App, null)
        )
      );

    } catch (error) {
      console.error('Compilation Error:', error);
      document.getElementById('root').innerHTML =
        '<div class="preview-error">' +
        '<h2>Compilation Error</h2>' +
        '<p><strong>Error:</strong> ' + String(error) + '</p>' +
        '<p style="margin-top: 1rem; font-size: 0.875rem; opacity: 0.8;">' +
        'Check your component syntax and try again.' +
        '</p>' +
        '</div>';
    }
  </script>
</body>
</html>`

const errorDocumentTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <style>
      body {
        font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
        margin: 0;
        padding: 2rem;
        background: #f8fafc;
      }
      .error {
        background: #fee2e2;
        border: 1px solid #fecaca;
        border-radius: 0.75rem;
        padding: 2rem;
        color: #991b1b;
      }
    </style>
  </head>
  <body>
    <div class="error">
      <h2>Preview Error</h2>
      <p>__VIBER_MESSAGE__</p>
    </div>
  </body>
</html>`
